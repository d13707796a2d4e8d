package config

import (
	"path/filepath"

	"staticreports-agent/internal/env"
	"staticreports-agent/internal/models"
)

// Port served by the front-end web server.
const FrontendPort = 80

// FrontendUnit is the long-running web server unit.
const FrontendUnit = "nginx"

// LpOAuthKeyPath is where the report jobs expect the Launchpad credentials.
const LpOAuthKeyPath = "/home/ubuntu/.config/lp-ubuntu-archive-unprivileged-bot.oauth"

// LpOAuthKeyOwner/Group own the credentials file.
const (
	LpOAuthKeyOwner = "ubuntu"
	LpOAuthKeyGroup = "ubuntu"
)

// ReportServices 固定的报表任务集合，每个任务对应一对service/timer单元
var ReportServices = []string{
	"update-sync-blocklist",
	"update-seeds",
	"packageset-report",
	"package-subscribers",
	"permissions-report",
}

/**
 * Build the fixed host provisioning specification
 * @returns {*models.ProvisionSpec} Returns the ordered provisioning tables
 * @description
 * - Packages, directories, repositories and asset placements required by the reports
 * - Asset sources resolve below env.AssetsDir so tests can redirect them
 * - The default nginx site is removed so it cannot shadow the reports site
 */
func ProvisionSpec() *models.ProvisionSpec {
	return &models.ProvisionSpec{
		Packages: []string{
			"git",
			"nginx-light",
			"procmail",
			"python3-keyring",
		},
		Directories: []models.DirectorySpec{
			{Path: "/srv/staticreports/www", Owner: "ubuntu", Group: "ubuntu"},
			{Path: "/srv/staticreports/www/seeds", Owner: "ubuntu", Group: "ubuntu"},
			{Path: "/srv/staticreports/www/packagesets", Owner: "ubuntu", Group: "ubuntu"},
			{Path: "/srv/staticreports/www/archive-permissions", Owner: "ubuntu", Group: "ubuntu"},
			{Path: "/usr/local/src"},
		},
		Repositories: []models.RepositorySpec{
			{
				URL:    "https://git.launchpad.net/ubuntu-archive-tools",
				Branch: "main",
				Target: "/usr/local/src/ubuntu-archive-tools",
			},
		},
		Assets: []models.AssetSpec{
			{Source: filepath.Join(env.AssetsDir, "script", "update-sync-blocklist"), Target: "/usr/bin/update-sync-blocklist", Mode: 0755},
			{Source: filepath.Join(env.AssetsDir, "script", "update-seeds"), Target: "/usr/bin/update-seeds", Mode: 0755},
			{Source: filepath.Join(env.AssetsDir, "nginx", "staticreports.conf"), Target: "/etc/nginx/conf.d/staticreports.conf", Mode: 0644},
		},
		DefaultSiteConfig: "/etc/nginx/sites-enabled/default",
	}
}

// SystemdUnitDir is where rendered unit files are written.
const SystemdUnitDir = "/etc/systemd/system"

// UnitTemplateDir holds the shipped service/timer unit templates.
func UnitTemplateDir() string {
	return filepath.Join(env.AssetsDir, "systemd")
}
