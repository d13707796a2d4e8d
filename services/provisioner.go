package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/user"
	"strconv"

	"staticreports-agent/internal/logger"
	"staticreports-agent/internal/models"
)

/**
 * Provisioner establishes the host environment for the report services
 * @description
 * - Steps run in strict order: packages, directories, repositories, assets,
 *   default site removal
 * - Any step failure aborts the remaining steps and propagates a typed error
 * - A rerun after a failure re-attempts every step; each step is idempotent
 */
type Provisioner struct {
	pkgs PackageManager
	git  GitClient
	spec *models.ProvisionSpec
}

func NewProvisioner(pkgs PackageManager, git GitClient, spec *models.ProvisionSpec) *Provisioner {
	return &Provisioner{
		pkgs: pkgs,
		git:  git,
		spec: spec,
	}
}

/**
 * Run the full provisioning sequence
 * @param {context.Context} ctx - Context bounding the external calls
 * @returns {error} ErrPackaging / ErrFilesystem / ErrSourceControl wrapped error of the first failed step
 */
func (p *Provisioner) Provision(ctx context.Context) error {
	logger.Info("Install required deb packages")
	if err := p.installPackages(ctx); err != nil {
		return err
	}

	logger.Info("Create the required directories")
	if err := p.createDirectories(); err != nil {
		return err
	}

	logger.Info("Updating repositories")
	if err := p.updateRepositories(ctx); err != nil {
		return err
	}

	logger.Info("Installing app and config files")
	if err := p.placeAssets(); err != nil {
		return err
	}

	logger.Info("Removing default site configuration")
	if err := os.Remove(p.spec.DefaultSiteConfig); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove %s: %v", ErrFilesystem, p.spec.DefaultSiteConfig, err)
	}
	return nil
}

func (p *Provisioner) installPackages(ctx context.Context) error {
	if err := p.pkgs.Update(ctx); err != nil {
		return err
	}
	for _, pkg := range p.spec.Packages {
		if err := p.pkgs.AddPackage(ctx, pkg); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provisioner) createDirectories() error {
	for _, dir := range p.spec.Directories {
		// 目录已存在不算错误
		if err := os.MkdirAll(dir.Path, 0755); err != nil {
			logger.Warnf("Creating directory %s failed: %v", dir.Path, err)
			return fmt.Errorf("%w: mkdir %s: %v", ErrFilesystem, dir.Path, err)
		}
		logger.Debugf("Directory %s created", dir.Path)
		if dir.Owner != "" {
			if err := chownPath(dir.Path, dir.Owner, dir.Group); err != nil {
				logger.Warnf("Setting ownership of %s failed: %v", dir.Path, err)
				return fmt.Errorf("%w: chown %s: %v", ErrFilesystem, dir.Path, err)
			}
			logger.Debugf("Ownership of directory %s set", dir.Path)
		}
	}
	return nil
}

func (p *Provisioner) updateRepositories(ctx context.Context) error {
	for _, repo := range p.spec.Repositories {
		logger.Debugf("Handle repository %s", repo.URL)
		info, err := os.Stat(repo.Target)
		if err == nil && info.IsDir() {
			// 目录已存在视为既有检出，执行pull
			if err := p.git.Pull(ctx, repo.Branch, repo.Target); err != nil {
				return err
			}
		} else {
			if err := p.git.Clone(ctx, repo.URL, repo.Branch, repo.Target); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Provisioner) placeAssets() error {
	for _, asset := range p.spec.Assets {
		if err := copyFile(asset.Source, asset.Target, asset.Mode); err != nil {
			logger.Warnf("Error copying %s to %s: %v", asset.Source, asset.Target, err)
			return fmt.Errorf("%w: copy %s: %v", ErrFilesystem, asset.Source, err)
		}
	}
	logger.Debug("App and config files copied")
	return nil
}

// chownPath 按用户/组名设置属主，组为空时使用用户的主组
func chownPath(path, owner, group string) error {
	usr, err := user.Lookup(owner)
	if err != nil {
		return err
	}
	gid := usr.Gid
	if group != "" {
		grp, err := user.LookupGroup(group)
		if err != nil {
			return err
		}
		gid = grp.Gid
	}
	uidNum, err := strconv.Atoi(usr.Uid)
	if err != nil {
		return err
	}
	gidNum, err := strconv.Atoi(gid)
	if err != nil {
		return err
	}
	return os.Chown(path, uidNum, gidNum)
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
