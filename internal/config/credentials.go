// Credential installation for the external OCR services.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/caltechlibrary/documentarist/internal/status"
)

// Services lists the recognized external service names, each of which has a
// creds_file setting in its own section.
var Services = []string{"amazon", "google", "microsoft"}

// CredentialsName returns the managed file name for a service's installed
// credentials.
func CredentialsName(service string) string {
	return service + "_credentials.json"
}

func knownService(service string) bool {
	for _, s := range Services {
		if s == service {
			return true
		}
	}
	return false
}

// InstallCredentials copies a user-supplied credentials file verbatim into
// the configuration directory under the service's managed name and records
// the destination path in the service's creds_file setting, persisting the
// Store. The file is only checked for a .json extension; its contents are
// never parsed here. Reinstalling for a service overwrites the previous
// file and setting.
//
// The copy goes through a uniquely named temporary file in the destination
// directory followed by a rename, so a failure part way through leaves any
// previously installed file untouched.
func (s *Store) InstallCredentials(service, file string) error {
	service = strings.ToLower(service)
	if !knownService(service) {
		return status.BadArgf("unrecognized service: %s (expected one of: %s)",
			service, strings.Join(Services, ", "))
	}
	if file == "" {
		return status.BadArgf("missing credentials file argument after service name")
	}
	if !strings.HasSuffix(strings.ToLower(file), ".json") {
		return status.BadArgf("credentials are expected to be in a JSON file: %s", file)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return status.FileErrf("credentials file does not exist: %s", file)
		}
		return status.FileErrf("cannot read credentials file %s: %v", file, err)
	}

	dir := s.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return status.FileErrf("cannot create configuration directory %s: %v", dir, err)
	}

	dest := filepath.Join(dir, CredentialsName(service))
	tmp := dest + ".tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return status.FileErrf("cannot write credentials file %s: %v", tmp, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return status.FileErrf("cannot install credentials file %s: %v", dest, err)
	}

	return s.Set(service, "creds_file", dest)
}
