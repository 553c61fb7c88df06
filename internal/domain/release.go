package domain

// Release holds all metadata related to a release.

type Release struct {
	Version      *Version
	TagName      string
	Branch       string
	ManifestPath string
}

// NewRelease derives the release metadata for a manifest version.
func NewRelease(v *Version, branch, manifestPath string) *Release {
	return &Release{
		Version:      v,
		TagName:      v.String(),
		Branch:       branch,
		ManifestPath: manifestPath,
	}
}

// TagMessage returns the annotation message for the release tag.
func (r *Release) TagMessage() string {
	return "Release " + r.Version.Plain()
}
