package model

import "time"

// Provider is a reseller tenant as stored in the `providers` table.  Each
// provider owns a set of end users and up to three candidate base URLs for
// its remote streaming backend (primary plus two backups).  The public Code
// is what end users type into the player to find their reseller.
//
// Fields:
//  ID           – primary key identifier.
//  Code         – unique public reseller code.
//  Name         – display name shown in the player.
//  Email        – unique login email for the reseller panel.
//  PasswordHash – bcrypt hashed password.
//  Logo         – logo image URL (may be empty).
//  Banner       – banner image URL (may be empty).
//  URLPrimary   – preferred streaming base URL.
//  URLBackup1   – first fallback base URL (may be empty).
//  URLBackup2   – second fallback base URL (may be empty).
//  Active       – whether the reseller is enabled.
//  CreatedAt    – timestamp of creation.
type Provider struct {
    ID           uint64    // providers.id
    Code         string    // providers.code
    Name         string    // providers.name
    Email        string    // providers.email
    PasswordHash string    // providers.password
    Logo         string    // providers.logo
    Banner       string    // providers.banner
    URLPrimary   string    // providers.url_primary
    URLBackup1   string    // providers.url_backup1
    URLBackup2   string    // providers.url_backup2
    Active       bool      // providers.active
    CreatedAt    time.Time // providers.created_at
}

// CandidateURLs returns the provider's base URLs in preference order,
// skipping any that are unset.  Callers iterate this list when
// authenticating an end user against the remote backend.
func (p Provider) CandidateURLs() []string {
    urls := make([]string, 0, 3)
    for _, u := range []string{p.URLPrimary, p.URLBackup1, p.URLBackup2} {
        if u != "" {
            urls = append(urls, u)
        }
    }
    return urls
}

// SpecialCategory is a reseller-defined content category surfaced to the
// player on login (e.g. a curated "kids" or sports shelf).  Stored in the
// `provider_special_categories` table.
type SpecialCategory struct {
    ID           uint64 // provider_special_categories.id
    ProviderID   uint64 // provider_special_categories.provider_id
    ContentType  string // provider_special_categories.content_type
    CategoryType string // provider_special_categories.category_type
    CategoryID   string // provider_special_categories.category_id
    CategoryName string // provider_special_categories.category_name
}
