package model

import "time"

// Profile is a sub-identity under an end user ("principal", kid profiles
// and so on), stored in the `profiles` table.  Every user keeps at least
// one active "principal" profile, created automatically on first login;
// that profile cannot be deleted.
type Profile struct {
    ID           uint64    // profiles.id
    UserID       uint64    // profiles.user_id
    Name         string    // profiles.name
    Avatar       string    // profiles.avatar (avatar catalog id)
    Type         string    // profiles.type ("principal" | "comum" | "kids")
    IsKid        bool      // profiles.is_kid
    PinProtected bool      // profiles.pin_protected
    Active       bool      // profiles.active
    CreatedAt    time.Time // profiles.created_at
}

// Avatar is an entry of the global avatar catalog (`avatars` table) users
// can pick for their profiles.
type Avatar struct {
    ID       uint64 // avatars.id
    Name     string // avatars.name
    File     string // avatars.file
    Category string // avatars.category
    Order    int    // avatars.order
}
