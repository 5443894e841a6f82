package resources

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path"
	"regexp"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"

	"github.com/SimonSapin/victor/core"
	"github.com/SimonSapin/victor/core/font"
	xfont "golang.org/x/image/font"
)

// GoogleFontInfo is a directory entry of the Google webfont service.
type GoogleFontInfo struct {
	Family   string            `json:"family"`
	Version  string            `json:"version"`
	Variants []string          `json:"variants"`
	Subsets  []string          `json:"subsets"`
	Files    map[string]string `json:"files"`
}

type googleFontsList struct {
	Items []GoogleFontInfo `json:"items"`
}

var loadGoogleFontsDir sync.Once
var googleFontsDirectory googleFontsList
var googleFontsLoadError error
var googleFontsAPI string = `https://www.googleapis.com/webfonts/v1/webfonts?`

// SetupGoogleFontsDirectory downloads the font directory of the Google
// webfont service, at most once per process. It requires an API key, taken
// as `google-api-key` from the global configuration or as GOOGLE_API_KEY
// from the environment.
func SetupGoogleFontsDirectory() error {
	loadGoogleFontsDir.Do(func() {
		apikey := gconf.GetString("google-api-key")
		if apikey == "" {
			apikey = os.Getenv("GOOGLE_API_KEY")
		}
		if apikey == "" {
			err := errors.New("Google API key not set")
			tracer().Errorf(err.Error())
			googleFontsLoadError = core.WrapError(err, core.EMISSING,
				`Google Fonts API-key must be set in global configuration or as GOOGLE_API_KEY in environment;
      please refer to https://developers.google.com/fonts/docs/developer_api`)
			return
		}
		values := url.Values{
			"sort": []string{"alpha"},
			"key":  []string{apikey},
		}
		resp, err := http.Get(googleFontsAPI + values.Encode())
		if err != nil {
			tracer().Errorf("Google Fonts API request not OK: %s", err.Error())
			googleFontsLoadError = core.WrapError(err, core.ECONNECTION,
				"could not get fonts-directory from Google font service")
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			tracer().Errorf("Google Fonts API request not OK: %v", resp.Status)
			err := core.Error(resp.StatusCode, "response: %v", resp.Status)
			googleFontsLoadError = core.WrapError(err, core.ECONNECTION,
				"could not get fonts-directory from Google font service")
			return
		}
		dec := json.NewDecoder(resp.Body)
		err = dec.Decode(&googleFontsDirectory)
		if err != nil {
			googleFontsLoadError = core.WrapError(err, core.EINVALID,
				"could not decode fonts-list from Google font service")
		}
	})
	return googleFontsLoadError
}

// FindGoogleFont searches the Google font directory for font families
// matching a name pattern, with at least one variant matching style and
// weight.
func FindGoogleFont(pattern string, style xfont.Style, weight xfont.Weight) ([]GoogleFontInfo, error) {
	if err := SetupGoogleFontsDirectory(); err != nil {
		return nil, err
	}
	r, err := regexp.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid font name pattern: %s", pattern)
	}
	var found []GoogleFontInfo
	for _, fi := range googleFontsDirectory.Items {
		if !r.MatchString(strings.ToLower(fi.Family)) {
			continue
		}
		for _, v := range fi.Variants {
			s := font.StyleConfidence(v, style)
			w := font.WeightConfidence(v, weight)
			if (s+w)/2 > font.NoConfidence {
				found = append(found, fi)
				break
			}
		}
	}
	if len(found) == 0 {
		return nil, core.Error(core.EMISSING,
			"no Google font matches %s [%v|%v]", pattern, style, weight)
	}
	return found, nil
}

// CacheGoogleFont downloads a variant of a Google font into the user's
// cache directory and returns the file path. If the file is already
// cached, no download happens.
func CacheGoogleFont(fi GoogleFontInfo, variant string) (string, error) {
	fileurl, ok := fi.Files[variant]
	if !ok {
		return "", core.Error(core.EMISSING,
			"font %s has no variant %s", fi.Family, variant)
	}
	cachedir, err := CacheDirPath("fonts")
	if err != nil {
		return "", core.WrapError(err, core.EINVALID, "cannot locate font cache directory")
	}
	ext := path.Ext(fileurl)
	if ext == "" {
		ext = ".ttf"
	}
	fname := font.NormalizeFontname(fi.Family) + "-" + variant + ext
	fpath := path.Join(cachedir, fname)
	if _, err := os.Stat(fpath); err == nil {
		tracer().Debugf("font %s already cached", fname)
		return fpath, nil
	}
	tracer().Infof("downloading font %s to %s", fi.Family, fpath)
	if err := DownloadCachedFile(fpath, fileurl); err != nil {
		return "", core.WrapError(err, core.ECONNECTION,
			"could not download font %s", fi.Family)
	}
	return fpath, nil
}

// ListGoogleFonts produces a listing of available fonts from the Google
// webfont service, with font-family names matching a given pattern.
//
// If not already done, the list of fonts will be downloaded from Google.
func ListGoogleFonts(pattern string) {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	if err := SetupGoogleFontsDirectory(); err != nil {
		tracer().Errorf(core.UserMessage(err))
	} else {
		listGoogleFonts(googleFontsDirectory, pattern)
	}
	tracer().SetTraceLevel(level)
}

func listGoogleFonts(list googleFontsList, pattern string) {
	r, err := regexp.Compile(pattern)
	if err != nil {
		tracer().Errorf("cannot list Google fonts: invalid pattern: %v", err)
		return
	}
	tracer().Infof("%d fonts in list", len(list.Items))
	tracer().Infof("======================================")
	for i, finfo := range list.Items {
		if r.MatchString(finfo.Family) {
			tracer().Infof("[%4d] %-20s: %s", i, finfo.Family, finfo.Version)
			tracer().Infof("       subsets: %v", finfo.Subsets)
			for k, v := range finfo.Files {
				tracer().Infof("       - %-18s: %s", k, v[len(v)-4:])
			}
		}
	}
}
