package cli

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/beanline/beanline/internal/cafe"
	"github.com/beanline/beanline/internal/menu"
	"github.com/beanline/beanline/internal/store"
)

// resolveDBPath picks the storage file: the --db flag, then the
// BEANLINE_DB environment variable, then ~/.beanline/beanline.db.
// The parent directory is created if missing.
func resolveDBPath(opts *RootOptions) (string, error) {
	path := opts.DBPath
	if path == "" {
		path = os.Getenv("BEANLINE_DB")
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", WrapExitError(ExitCommandError, "cannot determine home directory", err)
		}
		path = filepath.Join(home, ".beanline", "beanline.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", WrapExitError(ExitCommandError, "cannot create database directory", err)
	}
	return path, nil
}

// openCafe opens storage and constructs the order & cart store, loading
// the catalog file when --menu is set. The returned closer must be
// called when the command finishes.
func openCafe(opts *RootOptions, cmd *cobra.Command) (*cafe.Cafe, func(), error) {
	path, err := resolveDBPath(opts)
	if err != nil {
		return nil, nil, err
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "cannot open database", err)
	}

	cafeOpts := []cafe.Option{}
	if opts.MenuPath != "" {
		catalog, err := menu.Load(opts.MenuPath)
		if err != nil {
			st.Close()
			return nil, nil, WrapExitError(ExitCommandError, "cannot load catalog", err)
		}
		cafeOpts = append(cafeOpts, cafe.WithCatalog(catalog))
	}

	c := cafe.New(cmd.Context(), st, cafeOpts...)
	return c, func() { st.Close() }, nil
}

// newFormatter builds the output formatter for a command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// domainError reports a store operation failure on the formatter and
// converts it to an ExitError. OpError outcomes exit 1; anything else is
// an unexpected fault and exits 2.
func domainError(f *OutputFormatter, err error) error {
	var oe *cafe.OpError
	if errors.As(err, &oe) {
		f.Error(string(oe.Code), oe.Message, nil)
		return NewExitError(ExitFailure, oe.Message)
	}
	f.Error("INTERNAL", err.Error(), nil)
	return WrapExitError(ExitCommandError, "operation failed", err)
}
