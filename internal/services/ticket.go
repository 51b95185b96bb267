package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TicketService signs and validates the quiz-scoped authorization cookie.
// The ticket is the only session state in the attempt flow: it is issued by
// a successful code check, expires after the quiz's duration, and is cleared
// on submission. Nothing backs it server-side.
type TicketService struct {
	secret []byte
}

func NewTicketService(secret string) *TicketService {
	return &TicketService{secret: []byte(secret)}
}

type Ticket struct {
	StudentEmail string
	QuizID       uint
	Authorized   bool
	IssuedAt     time.Time
}

func (s *TicketService) Issue(email string, quizID uint, minutes int) (string, time.Time, error) {
	now := time.Now()
	expiry := now.Add(time.Duration(minutes) * time.Minute)

	claims := jwt.MapClaims{
		"stu_email":  email,
		"quiz_id":    quizID,
		"authorized": true,
		"iat":        now.Unix(),
		"exp":        expiry.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiry, nil
}

// Parse validates signature and expiry and returns the ticket claims. An
// expired ticket is indistinguishable from a missing one to callers.
func (s *TicketService) Parse(tokenString string) (*Ticket, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, Unauthorized("invalid or expired quiz authorization")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, Unauthorized("invalid quiz authorization")
	}

	email, _ := claims["stu_email"].(string)
	quizID, _ := claims["quiz_id"].(float64)
	authorized, _ := claims["authorized"].(bool)
	iat, _ := claims["iat"].(float64)
	if email == "" || quizID == 0 || !authorized {
		return nil, Unauthorized("invalid quiz authorization")
	}

	return &Ticket{
		StudentEmail: email,
		QuizID:       uint(quizID),
		Authorized:   true,
		IssuedAt:     time.Unix(int64(iat), 0),
	}, nil
}
