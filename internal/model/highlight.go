package model

import "time"

// Highlight is a reseller-curated featured category shown on the player
// home screen, stored in the `highlights` table and managed through the
// provider panel.
type Highlight struct {
    ID           uint64    // highlights.id
    ProviderID   uint64    // highlights.provider_id
    Type         string    // highlights.type ("live" | "movie" | "series")
    CategoryName string    // highlights.category_name
    CategoryID   string    // highlights.category_id
    LogoURL      string    // highlights.logo_url
    Order        int       // highlights.order
    Active       bool      // highlights.active
    CreatedAt    time.Time // highlights.created_at
}
