package models

import "os"

/**
 * Directory required by the report services
 * @property {string} path - Absolute directory path
 * @property {string} owner - Owning user, empty leaves ownership to the OS default
 * @property {string} group - Owning group, empty leaves ownership to the OS default
 */
type DirectorySpec struct {
	Path  string `json:"path"`
	Owner string `json:"owner,omitempty"`
	Group string `json:"group,omitempty"`
}

/**
 * Source checkout required by the report services
 * @property {string} url - Remote repository URL
 * @property {string} branch - Branch to clone or pull
 * @property {string} target - Local target path; existing path is treated as a checkout
 */
type RepositorySpec struct {
	URL    string `json:"url"`
	Branch string `json:"branch"`
	Target string `json:"target"`
}

/**
 * Static file shipped with the agent and copied into place during provisioning
 * @property {string} source - Path below the assets directory
 * @property {string} target - Absolute destination path
 * @property {os.FileMode} mode - Destination file mode
 */
type AssetSpec struct {
	Source string      `json:"source"`
	Target string      `json:"target"`
	Mode   os.FileMode `json:"mode"`
}

/**
 * Full host provisioning specification
 * @description
 * - Ordered tables: packages first, then directories, repositories, assets
 * - DefaultSiteConfig names a file removed after asset placement (missing ok)
 */
type ProvisionSpec struct {
	Packages          []string         `json:"packages"`
	Directories       []DirectorySpec  `json:"directories"`
	Repositories      []RepositorySpec `json:"repositories"`
	Assets            []AssetSpec      `json:"assets"`
	DefaultSiteConfig string           `json:"defaultSiteConfig"`
}
