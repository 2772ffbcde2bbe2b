package dto

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleSignInRequest carries the ID token minted by Google's client SDK.
type GoogleSignInRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// RefreshRequest represents a token refresh request. The token is checked in
// the service so its absence maps onto the invalid-token error, not a
// binding error.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest represents a logout request.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UpdateUserRequest carries a partial profile update. Nil fields are left
// untouched.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName" form:"firstName"`
	LastName  *string `json:"lastName" form:"lastName"`
	Headline  *string `json:"headline" form:"headline"`
	Bio       *string `json:"bio" form:"bio"`
	Location  *string `json:"location" form:"location"`
	Website   *string `json:"website" form:"website"`
	Password  *string `json:"password" form:"password"`
}

// CreatePostRequest represents a post creation request. Images arrive as
// multipart files and are handled separately.
type CreatePostRequest struct {
	Content string `json:"content" form:"content" binding:"required"`
}

// UpdatePostRequest represents a post update request.
type UpdatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateCommentRequest represents a comment creation request. PostID is
// validated in the service so the error literals match the API contract.
type CreateCommentRequest struct {
	PostID  string `json:"postId" form:"postId"`
	Content string `json:"content" form:"content" binding:"required"`
}

// UpdateCommentRequest represents a comment update request.
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// GenerateTripRequest asks the itinerary generator for a day-by-day plan.
type GenerateTripRequest struct {
	Destination string   `json:"destination" binding:"required"`
	StartDate   string   `json:"startDate" binding:"required"`
	EndDate     string   `json:"endDate" binding:"required"`
	Interests   []string `json:"interests"`
}

// SaveTripRequest persists a generated itinerary.
type SaveTripRequest struct {
	Destination string        `json:"destination" binding:"required"`
	StartDate   string        `json:"startDate" binding:"required"`
	EndDate     string        `json:"endDate" binding:"required"`
	Interests   []string      `json:"interests"`
	Days        []TripDayData `json:"days" binding:"required"`
	Notes       string        `json:"notes"`
}

// TripDayData is one day of an itinerary as sent by the client.
type TripDayData struct {
	Day        int      `json:"day"`
	Title      string   `json:"title"`
	Activities []string `json:"activities"`
}
