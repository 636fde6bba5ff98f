package blinfo

import (
	"log/slog"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// RequiredKeys must all be present in a declaration or the add-on is
// excluded from the index.
var RequiredKeys = []string{"name", "blender"}

// RecommendedKeys are reported when absent but never cause exclusion.
var RecommendedKeys = []string{"author", "description", "location", "wiki_url", "category"}

// Augment validates a declaration and returns a shallow copy extended with
// the download_url and source fields, keyed for the aggregate index. Missing
// required keys reject the add-on (logged, nil returned); missing recommended
// keys are only reported.
func Augment(info map[string]interface{}, addonID, source, downloadURL string, log *slog.Logger) map[string]interface{} {
	if missing := missingKeys(info, RequiredKeys); len(missing) > 0 {
		log.Warn("skipping add-on: missing required keys",
			"addon", addonID, "keys", strings.Join(missing, ", "))
		return nil
	}

	if missing := missingKeys(info, RecommendedKeys); len(missing) > 0 {
		log.Info("add-on misses recommended keys",
			"addon", addonID, "keys", strings.Join(missing, ", "))
	}

	checkVersion(info, addonID, log)

	entry := make(map[string]interface{}, len(info)+2)
	for key, value := range info {
		entry[key] = value
	}
	entry["download_url"] = downloadURL
	entry["source"] = source

	return entry
}

func missingKeys(info map[string]interface{}, keys []string) []string {
	var missing []string
	for _, key := range keys {
		if _, ok := info[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// checkVersion reports a declared version string that does not parse as
// semver. Add-ons usually declare version as a tuple; when a string is used
// instead, a malformed one tends to confuse client-side update checks.
func checkVersion(info map[string]interface{}, addonID string, log *slog.Logger) {
	raw, ok := info["version"].(string)
	if !ok || raw == "" {
		return
	}
	if _, err := semver.NewVersion(strings.TrimPrefix(raw, "v")); err != nil {
		log.Info("add-on declares a non-semver version string",
			"addon", addonID, "version", raw)
	}
}
