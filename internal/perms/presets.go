package perms

import "github.com/shepherd-platform/shepctl/internal/project"

// ReadOnly is the preset applied after site-install: configuration is
// locked against stray writes from the running site. Files are restricted
// before the directory so every chmod still happens inside a writable
// parent.
func ReadOnly(p project.Paths) []Spec {
	return []Spec{
		{Path: p.SettingsFile, Mode: LockedFile},
		{Path: p.ServicesFile, Mode: SharedFile},
		{Path: p.SettingsDir, Mode: LockedDir},
	}
}

// Writable is the preset applied before steps that modify configuration.
// The directory opens first so files inside it can be created.
func Writable(p project.Paths) []Spec {
	return []Spec{
		{Path: p.SettingsDir, Mode: SharedDir},
		{Path: p.SettingsFile, Mode: SharedFile},
		{Path: p.ServicesFile, Mode: SharedFile},
	}
}
