// Package fileutil provides path and file helpers used by the FTP bootstrap.
//
// All filesystem access goes through an afero.Fs so callers can run against
// the real disk (afero.NewOsFs) or memory (afero.NewMemMapFs) in tests.
package fileutil
