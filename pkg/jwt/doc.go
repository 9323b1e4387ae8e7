// Package jwt signs and validates the HS256 tokens the runningmate API hands out.
//
// Tokens travel in the x-auth-token header. The token itself is opaque to the
// client; only the server reads the claims.
//
//	svc, err := jwt.NewService(jwt.Config{
//	    Secret:         os.Getenv("JWT_SECRET"),
//	    Issuer:         "runningmate",
//	    ExpirationMins: 1440,
//	})
//
//	token, err := svc.Sign(jwt.Claims{UserID: user.ID, NickName: user.NickName})
//	claims, err := svc.Validate(token)
package jwt
