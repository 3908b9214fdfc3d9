// Package xtream implements the client for Xtream-compatible streaming
// backends (the player_api.php protocol spoken by reseller panels).  Only
// the account-authentication call is implemented here; media itself is
// fetched by the player directly from the backend.
package xtream

// Remote account statuses the panel reacts to.  Any other status is
// accepted as-is.
const (
    StatusActive  = "Active"
    StatusExpired = "Expired"
    StatusBanned  = "Banned"
)

// UserInfo is the user_info block of a player_api.php response.  Numeric
// fields arrive as strings from most panels, so they are kept as strings
// and forwarded untouched.
type UserInfo struct {
    Username             string   `json:"username"`
    Password             string   `json:"password"`
    Auth                 int      `json:"auth"`
    Status               string   `json:"status"`
    ExpDate              *string  `json:"exp_date"`
    IsTrial              string   `json:"is_trial"`
    ActiveCons           string   `json:"active_cons"`
    CreatedAt            string   `json:"created_at"`
    MaxConnections       string   `json:"max_connections"`
    AllowedOutputFormats []string `json:"allowed_output_formats"`
}

// ServerInfo is the server_info block of a player_api.php response.
type ServerInfo struct {
    URL            string `json:"url"`
    Port           string `json:"port"`
    HTTPSPort      string `json:"https_port"`
    ServerProtocol string `json:"server_protocol"`
    RTMPPort       string `json:"rtmp_port"`
    Timezone       string `json:"timezone"`
    TimestampNow   int64  `json:"timestamp_now"`
    TimeNow        string `json:"time_now"`
}

// AuthResponse is the full payload returned by
// GET {base}/player_api.php?username=..&password=..
type AuthResponse struct {
    UserInfo   UserInfo   `json:"user_info"`
    ServerInfo ServerInfo `json:"server_info"`
}

// Authenticated reports whether the backend accepted the credentials.
func (r *AuthResponse) Authenticated() bool {
    return r != nil && r.UserInfo.Auth == 1
}
