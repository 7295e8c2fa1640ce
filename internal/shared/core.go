// File: internal/shared/core.go
package shared

// Gender is the enumerated gender value carried on a user identity.
// The wire encoding follows the original Bluestock API ("m", "f", "o").
type Gender string

const (
	GenderMale   Gender = "m"
	GenderFemale Gender = "f"
	GenderOther  Gender = "o"
)

// IsValid reports whether g is one of the three enumerated values.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// UserIdentity is the authenticated user as returned by the backend gateway.
// ID is opaque and immutable once assigned; Email is the login key.
type UserIdentity struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	FullName         string `json:"fullName"`
	MobileNumber     string `json:"mobileNo"`
	Gender           Gender `json:"gender"`
	IsMobileVerified bool   `json:"isMobileVerified"`
	IsEmailVerified  bool   `json:"isEmailVerified"`
}

// IsZero reports whether the identity carries no data at all.
func (u UserIdentity) IsZero() bool {
	return u == UserIdentity{}
}

// AuthResult is the {identity, token} pair minted by a successful
// credential or OTP exchange. The token is opaque to the client.
type AuthResult struct {
	Identity UserIdentity `json:"identity"`
	Token    string       `json:"token"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the body of POST /auth/register. The password
// confirmation never leaves the client; only the agreed profile is sent.
type RegisterRequest struct {
	FullName     string `json:"fullName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8,max=72"`
	MobileNumber string `json:"mobileNo" binding:"required"`
	Gender       Gender `json:"gender" binding:"required,oneof=m f o"`
}

// RegisterResponse is the body of a successful POST /auth/register.
// Account creation is deferred until the OTP is verified.
type RegisterResponse struct {
	OTPSent bool `json:"otpSent"`
}

// VerifyOTPRequest is the body of POST /auth/verify-otp.
type VerifyOTPRequest struct {
	MobileNumber string `json:"mobile" binding:"required"`
	OTP          string `json:"otp" binding:"required,len=6,numeric"`
}

// OTPLength is the exact number of digits in a one-time code.
const OTPLength = 6
