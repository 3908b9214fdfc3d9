package model

import "time"

// Admin represents a platform administrator as stored in the `admins`
// table.  Admins manage providers and global settings through the panel.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name.
//  Email        – unique login email.
//  PasswordHash – bcrypt hashed password (legacy rows may carry a $2y$ prefix).
//  Active       – whether the account may log in.
//  LastAccess   – timestamp of the last successful login (nullable).
//  CreatedAt    – timestamp of creation.
type Admin struct {
    ID           uint64     // admins.id
    Name         string     // admins.name
    Email        string     // admins.email
    PasswordHash string     // admins.password
    Active       bool       // admins.active
    LastAccess   *time.Time // admins.last_access (nullable)
    CreatedAt    time.Time  // admins.created_at
}
