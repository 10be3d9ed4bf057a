// Package jwt issues and validates the bearer tokens returned by /login.
//
// Tokens are HS256-signed with a shared secret using github.com/golang-jwt/jwt/v5.
//
// # Token Generation
//
//	svc, err := jwt.NewService(jwt.Config{
//	    Secret:         os.Getenv("JWT_SECRET"),
//	    Issuer:         "holocron",
//	    ExpirationMins: 60,
//	})
//	token, err := svc.Sign(user.ID, user.Username)
//
// # Token Validation
//
//	claims, err := svc.Validate(tokenString)
//	if err != nil {
//	    // ErrTokenExpired, ErrInvalidSignature or ErrInvalidToken
//	}
//	userID := claims.UserID
package jwt
