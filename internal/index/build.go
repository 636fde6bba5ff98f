package index

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/addonhub-labs/addonhub/internal/blinfo"
	"github.com/addonhub-labs/addonhub/internal/scanner"
)

// Build scans dir and returns the addons mapping for every unit whose
// metadata could be extracted and validated. Per-unit failures are logged by
// the layer that detected them and leave no trace in the result. The only
// errors returned are an unreadable directory and an unparseable base URL.
func Build(dir, sourceLabel, baseURL string, log *slog.Logger) (map[string]Entry, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", baseURL, err)
	}

	units, err := scanner.Scan(dir, log)
	if err != nil {
		return nil, err
	}

	addons := make(map[string]Entry, len(units))
	for _, unit := range units {
		info := blinfo.Parse(unit.Path, log)
		if info == nil {
			// The reason why has already been logged.
			continue
		}

		downloadURL, err := joinURL(base, unit.ID+unit.Ext)
		if err != nil {
			log.Warn("skipping add-on: cannot build download URL",
				"addon", unit.ID, "error", err)
			continue
		}

		entry := blinfo.Augment(info, unit.ID, sourceLabel, downloadURL, log)
		if entry == nil {
			// The reason why has already been logged.
			continue
		}

		addons[unit.ID] = entry
	}

	return addons, nil
}

// joinURL resolves ref against base the way a browser would, so a base of
// http://host/addons/ and a ref of foo.py yield http://host/addons/foo.py.
func joinURL(base *url.URL, ref string) (string, error) {
	rel, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parsing reference %q: %w", ref, err)
	}
	return base.ResolveReference(rel).String(), nil
}
