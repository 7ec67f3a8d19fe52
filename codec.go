package session

import (
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Codec serializes the user record into the storage slot and back.
type Codec interface {
	Encode(user *User) ([]byte, error)
	Decode(data []byte) (*User, error)
}

// JSONCodec stores the record as plain JSON, matching the portal's original
// browser slot format.
type JSONCodec struct{}

func (JSONCodec) Encode(user *User) ([]byte, error) {
	if user == nil {
		return nil, goerrors.New("cannot encode nil user record", goerrors.CategoryInternal)
	}
	data, err := json.Marshal(user)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode session record")
	}
	return data, nil
}

func (JSONCodec) Decode(data []byte) (*User, error) {
	user := &User{}
	if err := json.Unmarshal(data, user); err != nil {
		return nil, wrapDecodeError(err)
	}

	if user.Email == "" {
		return nil, goerrors.New("session record has no identity", ErrSlotDecode.Category).
			WithTextCode(ErrSlotDecode.TextCode)
	}

	return user, nil
}

// TokenCodec signs the record as HS256 claims so a tampered slot fails the
// decode step instead of restoring a forged identity. Tokens carry no expiry;
// the design has no session-expiration concept.
type TokenCodec struct {
	signingKey []byte
	issuer     string
}

type slotClaims struct {
	jwt.RegisteredClaims
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

func NewTokenCodec(signingKey []byte) *TokenCodec {
	return &TokenCodec{signingKey: signingKey, issuer: "campusbook"}
}

func (c *TokenCodec) WithIssuer(issuer string) *TokenCodec {
	c.issuer = issuer
	return c
}

func (c *TokenCodec) Encode(user *User) ([]byte, error) {
	if user == nil {
		return nil, goerrors.New("cannot encode nil user record", goerrors.CategoryInternal)
	}

	claims := &slotClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:  c.issuer,
			Subject: user.ID.String(),
		},
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
		Avatar: user.AvatarURL,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign session record")
	}

	return []byte(signed), nil
}

func (c *TokenCodec) Decode(data []byte) (*User, error) {
	claims := &slotClaims{}
	token, err := jwt.ParseWithClaims(string(data), claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.signingKey, nil
	})
	if err != nil {
		return nil, wrapDecodeError(err)
	}

	if !token.Valid || claims.Email == "" {
		return nil, goerrors.New("session record has no identity", ErrSlotDecode.Category).
			WithTextCode(ErrSlotDecode.TextCode)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, wrapDecodeError(err)
	}

	return &User{
		ID:        id,
		Email:     claims.Email,
		Name:      claims.Name,
		Role:      claims.Role,
		AvatarURL: claims.Avatar,
	}, nil
}

func wrapDecodeError(err error) error {
	return goerrors.Wrap(err, ErrSlotDecode.Category, ErrSlotDecode.Message).
		WithTextCode(ErrSlotDecode.TextCode)
}
