package model

import (
    "time"

    "github.com/streamvault/panel-api/internal/xtream"
)

// User is an end user of the web player, stored in the `users` table.  The
// pair (ProviderID, ProviderLogin) is the natural key: local rows are
// materialized lazily on first successful login against the reseller's
// remote backend and refreshed on every login after that.
//
// Fields:
//  ID             – locally generated primary key.
//  ProviderID     – owning reseller.
//  ProviderCode   – denormalized reseller code at creation time.
//  ProviderLogin  – login name on the reseller's remote backend.
//  Name           – display name (remote username, falling back to the login).
//  ProviderData   – JSON snapshot of the remote account (users.provider_data).
//  Language       – player UI language preference.
//  ParentalActive – whether parental control is enabled.
//  Active         – reactivated on every successful login.
//  LastLogin      – timestamp of the last successful login (nullable).
//  CreatedAt      – timestamp of first login.
type User struct {
    ID             uint64     // users.id
    ProviderID     uint64     // users.provider_id
    ProviderCode   string     // users.provider_code
    ProviderLogin  string     // users.provider_login
    Name           string     // users.name
    ProviderData   []byte     // users.provider_data (JSON)
    Language       string     // users.language
    ParentalActive bool       // users.parental_active
    Active         bool       // users.active
    LastLogin      *time.Time // users.last_login (nullable)
    CreatedAt      time.Time  // users.created_at
}

// ProviderData is the snapshot persisted into users.provider_data after a
// successful remote authentication: the password that worked, the base URL
// that answered, and the remote account metadata.  It is overwritten on
// every login and never written by any other path.
type ProviderData struct {
    Password string           `json:"password"`
    BaseURL  string           `json:"base_url"`
    UserInfo *xtream.UserInfo `json:"user_info,omitempty"`
}
