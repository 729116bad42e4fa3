package types

// DeviceInfo is the per-session device metadata captured at login and stored
// alongside the refresh token.
type DeviceInfo struct {
	UserAgent string `json:"userAgent"`
	IP        string `json:"ip"`
	Device    string `json:"device"`
}
