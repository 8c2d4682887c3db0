// Package resource fetches and parses data from URLs.
//
// A resource is addressed by a URL whose scheme picks a Downloader (file,
// http, https, mqtt, ssh) and whose extension picks a Parser (json, yaml,
// csv, text, gob) through a MimeTable. Load runs the full pipeline:
//
//	v, err := resource.Load(ctx, "https://example.com/conf.yaml")
//	if err != nil {
//		return err
//	}
//	conf := v.(map[string]any)
//
// Every stage can be swapped per call with options:
//
//	v, err := resource.Load(ctx, "file:///data/records",
//		resource.WithMimetype("text/csv"),
//		resource.WithHook(dropHeader),
//	)
//
// Unknown schemes fail with ErrUnknownScheme; unknown mimetypes fall back to
// the raw bytes. New schemes and mimetypes are added through the Downloaders,
// Parsers and MimeTable registries, either the package defaults or private
// instances passed via options.
package resource
