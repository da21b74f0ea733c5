// Package auth resolves the calling account of a ledger request.
//
// With a signing key configured, callers present an HS256 bearer token whose
// subject is their account. Without one, the account header is trusted as
// is; that mode is meant for local runs behind a trusted gateway.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/louisbranch/ticketbooth/internal/platform/errors"
	grpcmeta "github.com/louisbranch/ticketbooth/internal/services/ledger/api/grpc/metadata"
	"google.golang.org/grpc"
)

// DefaultIssuer is the issuer claim of caller tokens.
const DefaultIssuer = "ticketbooth"

// Verifier signs and verifies caller tokens.
type Verifier struct {
	Key    []byte
	Issuer string
	Now    func() time.Time
}

type callerClaims struct {
	jwt.RegisteredClaims
}

// NewVerifier builds a verifier for key. An empty key returns nil, which
// disables token authentication.
func NewVerifier(key string) *Verifier {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	return &Verifier{Key: []byte(key), Issuer: DefaultIssuer, Now: time.Now}
}

func (v *Verifier) now() time.Time {
	if v.Now == nil {
		return time.Now()
	}
	return v.Now()
}

// Issue returns a token naming account as the caller, valid for ttl.
func (v *Verifier) Issue(account string, ttl time.Duration) (string, error) {
	account = strings.TrimSpace(account)
	if account == "" {
		return "", errors.New("account is required")
	}
	if ttl <= 0 {
		return "", errors.New("token ttl must be positive")
	}
	now := v.now().UTC()
	claims := callerClaims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    v.Issuer,
		Subject:   account,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.Key)
}

// Verify validates token and returns its subject account.
func (v *Verifier) Verify(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperrors.New(apperrors.CodeCallerInvalid, "caller token is required")
	}
	var parsed callerClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return v.Key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeCallerInvalid, "caller token is invalid", err)
	}
	account := strings.TrimSpace(parsed.Subject)
	if account == "" {
		return "", apperrors.New(apperrors.CodeCallerInvalid, "caller token has no subject")
	}
	return account, nil
}

// Resolve determines the caller of ctx. It returns "" with a nil error when
// the request carries no identity at all.
func Resolve(ctx context.Context, verifier *Verifier) (string, error) {
	if verifier == nil {
		return grpcmeta.AccountFromIncomingContext(ctx), nil
	}
	header := strings.TrimSpace(grpcmeta.AuthorizationFromIncomingContext(ctx))
	if header == "" {
		return "", nil
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", apperrors.New(apperrors.CodeCallerInvalid, fmt.Sprintf("unsupported authorization scheme %q", scheme))
	}
	return verifier.Verify(token)
}

// UnaryServerInterceptor stores the resolved caller in the request context.
func UnaryServerInterceptor(verifier *Verifier) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		account, err := Resolve(ctx, verifier)
		if err != nil {
			return nil, apperrors.HandleError(err, grpcmeta.LocaleFromContext(ctx))
		}
		return handler(grpcmeta.WithCaller(ctx, account), req)
	}
}

// StreamServerInterceptor stores the resolved caller in the stream context.
func StreamServerInterceptor(verifier *Verifier) grpc.StreamServerInterceptor {
	return func(srv any, stream grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx := stream.Context()
		account, err := Resolve(ctx, verifier)
		if err != nil {
			return apperrors.HandleError(err, grpcmeta.LocaleFromContext(ctx))
		}
		return handler(srv, &grpcmeta.WrappedServerStream{ServerStream: stream, Ctx: grpcmeta.WithCaller(ctx, account)})
	}
}

// BearerCredentials attaches a caller token to every RPC.
type BearerCredentials struct {
	Token string
	// Insecure allows sending the token over plaintext connections.
	Insecure bool
}

// GetRequestMetadata implements credentials.PerRPCCredentials.
func (c BearerCredentials) GetRequestMetadata(context.Context, ...string) (map[string]string, error) {
	return map[string]string{grpcmeta.AuthorizationHeader: "Bearer " + c.Token}, nil
}

// RequireTransportSecurity implements credentials.PerRPCCredentials.
func (c BearerCredentials) RequireTransportSecurity() bool {
	return !c.Insecure
}
