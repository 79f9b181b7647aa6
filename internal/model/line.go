package model

// LineProfile is the normalized LINE user profile. Fields the provider adds
// beyond these four are dropped.
type LineProfile struct {
	UserID        string `json:"userId"`
	DisplayName   string `json:"displayName"`
	PictureURL    string `json:"pictureUrl"`
	StatusMessage string `json:"statusMessage"`
}

// ExchangeResult is returned to the browser after a successful sign-in.
type ExchangeResult struct {
	AccessToken string `json:"access_token"`

	// IDToken is only present when the openid scope was granted.
	IDToken  string      `json:"id_token,omitempty"`
	UserInfo LineProfile `json:"userInfo"`
}
