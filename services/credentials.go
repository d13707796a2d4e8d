package services

import (
	"context"
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"staticreports-agent/internal/logger"
)

// Secret field carrying the Launchpad OAuth token.
const lpOAuthKeyField = "lpoauthkey"

/**
 * Credential resolver fetches the Launchpad OAuth token and persists it for the jobs
 * @description
 * - A missing credential is an expected operating state, never an error:
 *   resolution reduces every store failure to an absent result plus a log line
 * - Persist reports success as a boolean so the reconciler can pick the
 *   matching operator message
 */
type CredentialResolver struct {
	store SecretStore
	path  string
	owner string
	group string
}

func NewCredentialResolver(store SecretStore, path, owner, group string) *CredentialResolver {
	return &CredentialResolver{
		store: store,
		path:  path,
		owner: owner,
		group: group,
	}
}

/**
 * Resolve the Launchpad OAuth token from the configured secret
 * @param {string} secretID - Opaque secret reference, empty means not configured
 * @returns {string} Token data
 * @returns {bool} False when unconfigured, lookup failed or the field is missing
 */
func (c *CredentialResolver) ResolveOAuthKey(ctx context.Context, secretID string) (string, bool) {
	if secretID == "" {
		logger.Warn("lpuser_secret_id config not available, unable to extract keys")
		return "", false
	}

	content, err := c.store.GetContent(ctx, secretID, true)
	if err != nil {
		logger.Warnf("Failed to get lpuser secret with id %s: %v", secretID, err)
		return "", false
	}

	key, ok := content[lpOAuthKeyField]
	if !ok {
		logger.Warnf("%s not found in lpuser secret", lpOAuthKeyField)
		return "", false
	}
	logger.Debugf("Got secret id %s, returning key %s", secretID, lpOAuthKeyField)
	return key, true
}

/**
 * Persist the credential data to the fixed key file
 * @param {string} keyData - Private credential data
 * @returns {bool} True when directory, write and ownership all succeeded
 * @description
 * - The parent directory is created when absent
 * - File mode is 0600, ownership is the configured user/group
 * - Every failure is logged and reported as false, never raised
 */
func (c *CredentialResolver) Persist(keyData string) bool {
	parent := filepath.Dir(c.path)
	if err := os.MkdirAll(parent, 0755); err != nil {
		logger.Errorf("Failed to create lp credentials entry due to directory issues: %v", err)
		return false
	}

	var uid, gid = -1, -1
	if c.owner != "" {
		usr, err := user.Lookup(c.owner)
		if err != nil {
			logger.Errorf("Failed to create lp credentials entry due to issues with the owning user: %v", err)
			return false
		}
		uid, _ = strconv.Atoi(usr.Uid)
		gid, _ = strconv.Atoi(usr.Gid)
		if c.group != "" {
			grp, err := user.LookupGroup(c.group)
			if err != nil {
				logger.Errorf("Failed to create lp credentials entry due to issues with the owning group: %v", err)
				return false
			}
			gid, _ = strconv.Atoi(grp.Gid)
		}
	}

	if err := os.WriteFile(c.path, []byte(keyData), 0600); err != nil {
		logger.Errorf("Failed to create lp credentials entry due to permission issues: %v", err)
		return false
	}
	if uid >= 0 {
		if err := os.Chown(c.path, uid, gid); err != nil {
			logger.Errorf("Failed to set ownership of lp credentials entry: %v", err)
			return false
		}
	}
	logger.Debugf("Written lp oauth key (length %d) to %s", len(keyData), c.path)
	return true
}
