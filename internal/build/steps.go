package build

import (
	"context"

	"github.com/shepherd-platform/shepctl/internal/env"
	"github.com/shepherd-platform/shepctl/internal/perms"
	"github.com/shepherd-platform/shepctl/internal/project"
	"github.com/shepherd-platform/shepctl/internal/settings"
	"github.com/shepherd-platform/shepctl/internal/shell"
)

// Steps returns the pipeline stages in execution order. The order is a
// contract: configuration must be writable before settings.php is touched
// and locked again before the optional identity steps run against the
// installed site.
func (p *Pipeline) Steps() []Step {
	return []Step{
		{
			ID:   "xdebug-disable",
			Desc: "Disable xdebug for the build",
			Skip: p.skipUnlessXdebug,
			Run:  p.command("sudo", "-E", "phpdismod", "xdebug"),
		},
		{
			ID:   "composer-validate",
			Desc: "Validate composer.json",
			Run:  p.composer("validate", "--no-check-publish", "--no-interaction"),
		},
		{
			ID:   "composer-install",
			Desc: "Install dependencies",
			Run:  p.composer("install", "--prefer-dist", "--no-progress", "--no-interaction"),
		},
		{
			ID:   "shared-dirs",
			Desc: "Ensure shared writable directories",
			Run:  p.ensureSharedDirs,
		},
		{
			ID:   "settings-writable",
			Desc: "Make configuration writable",
			Run:  p.applyPreset(perms.Writable),
		},
		{
			ID:   "settings-ensure",
			Desc: "Ensure settings.php",
			Run:  p.ensureSettings,
		},
		{
			ID:   "site-install",
			Desc: "Install the site",
			Run:  p.drush(p.siteInstallArgs()...),
		},
		{
			ID:   "settings-readonly",
			Desc: "Lock configuration read-only",
			Run:  p.applyPreset(perms.ReadOnly),
		},
		{
			ID:   "site-uuid",
			Desc: "Sync the site UUID",
			Skip: p.skipUnlessSiteUUID,
			Run:  p.drush("config-set", "system.site", "uuid", p.cfg.SiteUUID, "-y"),
		},
		{
			ID:   "config-import",
			Desc: "Import site configuration",
			Skip: p.skipUnlessConfigImport,
			Run:  p.drush("config-import", "--partial", "-y"),
		},
		{
			ID:   "cache-rebuild",
			Desc: "Rebuild caches",
			Run:  p.drush("cache-rebuild"),
		},
		{
			ID:   "shared-dirs-final",
			Desc: "Re-apply shared directory permissions",
			Run:  p.ensureSharedDirs,
		},
		{
			ID:   "xdebug-enable",
			Desc: "Re-enable xdebug",
			Skip: p.skipUnlessXdebug,
			Run:  p.command("sudo", "-E", "phpenmod", "xdebug"),
		},
	}
}

func (p *Pipeline) skipUnlessXdebug() (string, bool) {
	if p.cfg.XdebugConfig == "" {
		return env.EnvVarXdebugConfig + " not set", true
	}

	return "", false
}

func (p *Pipeline) skipUnlessSiteUUID() (string, bool) {
	if p.cfg.SiteUUID == "" {
		return env.EnvVarSiteUUID + " not set", true
	}

	return "", false
}

func (p *Pipeline) skipUnlessConfigImport() (string, bool) {
	if reason, skip := p.skipUnlessSiteUUID(); skip {
		return reason, true
	}
	if !p.cfg.ImportConfig {
		return env.EnvVarImportConfig + " not enabled", true
	}

	return "", false
}

// command runs an arbitrary binary from the project root.
func (p *Pipeline) command(name string, args ...string) func(context.Context) error {
	return func(ctx context.Context) error {
		return p.runner.Run(ctx, shell.Command{
			Name:   name,
			Args:   args,
			Dir:    p.paths.Root,
			Stdout: p.out,
			Stderr: p.errOut,
		})
	}
}

// composer runs the composer binary from the project root.
func (p *Pipeline) composer(args ...string) func(context.Context) error {
	return p.command(p.paths.BinPath("composer"), args...)
}

// drush runs the project-local drush from the docroot, where drush locates
// the Drupal installation by itself.
func (p *Pipeline) drush(args ...string) func(context.Context) error {
	return func(ctx context.Context) error {
		return p.runner.Run(ctx, shell.Command{
			Name:   p.paths.BinPath("drush"),
			Args:   args,
			Dir:    p.paths.WebRoot,
			Stdout: p.out,
			Stderr: p.errOut,
		})
	}
}

func (p *Pipeline) ensureSharedDirs(context.Context) error {
	return perms.EnsureSharedDirs(p.logger, p.paths.PublicFilesDir, p.cfg.PrivateDir, p.cfg.TmpDir)
}

func (p *Pipeline) applyPreset(preset func(project.Paths) []perms.Spec) func(context.Context) error {
	return func(context.Context) error {
		perms.Apply(p.logger, preset(p.paths))
		return nil
	}
}

func (p *Pipeline) ensureSettings(context.Context) error {
	_, err := settings.NewGenerator(p.logger, p.paths, p.cfg).Ensure()
	return err
}

// siteInstallArgs assembles the drush site-install invocation. Identity
// arguments are included only when configured, so drush's own defaults
// apply otherwise.
func (p *Pipeline) siteInstallArgs() []string {
	args := []string{"site-install", p.cfg.InstallProfile, "-y"}

	if p.cfg.SiteAdminUsername != "" {
		args = append(args, "--account-name="+p.cfg.SiteAdminUsername)
	}
	if p.cfg.SiteAdminPassword != "" {
		args = append(args, "--account-pass="+p.cfg.SiteAdminPassword)
	}
	if p.cfg.SiteAdminEmail != "" {
		args = append(args, "--account-mail="+p.cfg.SiteAdminEmail)
	}
	if p.cfg.SiteTitle != "" {
		args = append(args, "--site-name="+p.cfg.SiteTitle)
	}
	if p.cfg.SiteMail != "" {
		args = append(args, "--site-mail="+p.cfg.SiteMail)
	}

	return args
}
