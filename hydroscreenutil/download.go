/*
Copyright © 2021 the hydroscreen authors.
This file is part of hydroscreen.

hydroscreen is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

hydroscreen is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with hydroscreen.  If not, see <http://www.gnu.org/licenses/>.
*/

package hydroscreenutil

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/sirupsen/logrus"
)

// maybeDownload checks if path is an existing local file. If it is, the
// given path is returned unchanged. If instead it is an http(s) URL, the
// file is staged into a temporary directory and the local path of the
// staged copy is returned. For shapefiles, the sidecar files (.dbf,
// .shx, .prj) are staged alongside.
func maybeDownload(path string) (string, error) {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return path, nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return downloadHTTP(path)
	}
	return path, nil
}

// downloadHTTP downloads a file (and, for shapefiles, its sidecar
// files) from the specified URL, retrying transient failures, and
// returns the path to the downloaded copy.
func downloadHTTP(path string) (string, error) {
	dir, err := ioutil.TempDir("", "hydroscreen")
	if err != nil {
		return "", fmt.Errorf("hydroscreen: creating temporary download directory: %v", err)
	}
	for i, fname := range expandShp(path) {
		required := i == 0 || filepath.Ext(fname) != ".prj"
		if err := downloadFile(fname, filepath.Join(dir, filepath.Base(fname))); err != nil {
			if !required {
				logrus.WithFields(logrus.Fields{
					"url": fname,
				}).Info("skipping optional sidecar file")
				continue
			}
			return "", err
		}
	}
	return filepath.Join(dir, filepath.Base(path)), nil
}

func downloadFile(url, dest string) error {
	return backoff.RetryNotify(
		func() error {
			resp, err := http.Get(url)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode == http.StatusNotFound {
				// Retrying will not make a missing file appear.
				return backoff.Permanent(fmt.Errorf("hydroscreen: downloading %s: %s", url, resp.Status))
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("hydroscreen: downloading %s: %s", url, resp.Status)
			}
			w, err := os.Create(dest)
			if err != nil {
				return err
			}
			if _, err := io.Copy(w, resp.Body); err != nil {
				w.Close()
				return err
			}
			return w.Close()
		},
		newDownloadBackoff(),
		func(err error, d time.Duration) {
			logrus.WithFields(logrus.Fields{
				"url":   url,
				"error": err.Error(),
			}).Infof("retrying download in %v", d)
		},
	)
}

func newDownloadBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 2 * time.Minute
	return b
}

// expandShp returns the names of the files associated with the
// shapefile at filename, or just filename itself for other file types.
func expandShp(filename string) []string {
	o := []string{filename}
	if filepath.Ext(filename) != ".shp" {
		return o
	}
	for _, newExt := range []string{".dbf", ".shx", ".prj"} {
		o = append(o, filename[0:len(filename)-4]+newExt)
	}
	return o
}
