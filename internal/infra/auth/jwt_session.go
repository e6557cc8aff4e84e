package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
)

// sessionClaims is the signed payload of a session token.
type sessionClaims struct {
	jwt.RegisteredClaims
}

// jwtSessionAuthority is a stateless SessionAuthority backed by HS256 JWTs.
type jwtSessionAuthority struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTSessionAuthority is the constructor for jwtSessionAuthority.
func NewJWTSessionAuthority(cfg *config.Config) (service.SessionAuthority, error) {
	if cfg.Session.Secret == "" {
		return nil, errors.New("session secret must be provided")
	}
	if cfg.Session.TTL <= 0 {
		return nil, errors.New("session ttl must be positive")
	}

	return &jwtSessionAuthority{
		secret: []byte(cfg.Session.Secret),
		issuer: cfg.Session.Issuer,
		ttl:    cfg.Session.TTL,
		now:    time.Now,
	}, nil
}

// Issue signs a token whose subject is the identity id.
func (a *jwtSessionAuthority) Issue(identityID uuid.UUID) (string, *entity.Session, error) {
	if identityID == uuid.Nil {
		return "", nil, errors.New("cannot issue a session for a nil identity")
	}

	// JWT timestamps have second precision; truncate so Issue and Resolve agree.
	issuedAt := a.now().UTC().Truncate(time.Second)
	session := &entity.Session{
		IdentityID: identityID,
		IssuedAt:   issuedAt,
		ExpiresAt:  issuedAt.Add(a.ttl),
	}

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identityID.String(),
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to sign session token")
	}

	return token, session, nil
}

// Resolve verifies the signature, algorithm, issuer and expiry of a token.
// Every failure is reported as service.ErrSessionInvalid.
func (a *jwtSessionAuthority) Resolve(tokenString string) (*entity.Session, error) {
	if tokenString == "" {
		return nil, service.ErrSessionInvalid
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(a.now),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, errors.WithMessage(service.ErrSessionInvalid, describeJWTError(err))
	}

	identityID, err := uuid.Parse(claims.Subject)
	if err != nil || identityID == uuid.Nil {
		return nil, errors.WithMessage(service.ErrSessionInvalid, "subject is not an identity id")
	}

	return &entity.Session{
		IdentityID: identityID,
		IssuedAt:   claims.IssuedAt.Time,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}

func describeJWTError(err error) string {
	switch {
	case err == nil:
		return "token not valid"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature invalid"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "token malformed"
	default:
		return "token rejected"
	}
}
