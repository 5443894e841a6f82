package resources

import (
	"context"
	"strings"

	"github.com/flopp/go-findfont"
	xfont "golang.org/x/image/font"

	"github.com/SimonSapin/victor/core"
	"github.com/SimonSapin/victor/core/font"
	"github.com/SimonSapin/victor/core/font/fontface"
)

// NotFound returns an application error for a missing font resource.
func NotFound(res string) error {
	return core.Error(core.EMISSING, "font not found: %s", res)
}

type fontPlusErr struct {
	font *font.TypeCase
	err  error
}

// TypeCasePromise is the await-side of asynchronous font resolving.
type TypeCasePromise interface {
	TypeCase() (*font.TypeCase, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*font.TypeCase, error)
}

func (loader fontLoader) TypeCase() (*font.TypeCase, error) {
	return loader.await(context.Background())
}

// ResolveTypeCase resolves a font type case with a given size.
//
// Fonts are searched in this order: the global font registry, the embedded
// fallback typeface, system fonts, and finally the Google Fonts service
// (if configured). Whatever is found gets stored in the global registry, so
// subsequent calls are cheap.
func ResolveTypeCase(name string, style xfont.Style, weight xfont.Weight, size float64) TypeCasePromise {
	ch := make(chan fontPlusErr)
	go func(ch chan<- fontPlusErr) {
		result := fontPlusErr{}
		if t, err := font.GlobalRegistry().TypeCase(name, size); err == nil {
			result.font = t
			ch <- result
			close(ch)
			return
		}
		var f *font.ScalableFont
		if isFallbackName(name) {
			f = font.FallbackVariant(style, weight)
			tracer().Debugf("%s resolves to embedded font %s", name, f.Fontname)
		}
		if f == nil {
			fpath, err := findfont.Find(name) // try to find as system font
			if err == nil && fpath != "" {
				tracer().Debugf("%s is a system font", name)
				f, result.err = font.LoadOpenTypeFont(fpath)
			}
		}
		if f == nil {
			var fiList []GoogleFontInfo
			if fiList, result.err = FindGoogleFont(name, style, weight); result.err == nil {
				fi := fiList[0]
				variant := bestVariant(fi, style, weight)
				var fpath string
				if fpath, result.err = CacheGoogleFont(fi, variant); result.err == nil {
					f, result.err = font.LoadOpenTypeFont(fpath)
				}
			}
		}
		if f != nil {
			f.Fontname = name
			font.GlobalRegistry().StoreFont(f)
			result.font, result.err = font.GlobalRegistry().TypeCase(name, size)
		} else if result.err == nil {
			result.err = NotFound(name)
		}
		ch <- result
		close(ch)
	}(ch)
	return fontLoader{
		await: func(ctx context.Context) (*font.TypeCase, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.font, r.err
			}
		},
	}
}

// ResolveFontFace loads the font resource of an @font-face declaration and
// stores it in the global registry under the declared family name. Sources
// are tried in order: local(…) entries against installed fonts, url(…)
// entries by download into the user's font cache.
func ResolveFontFace(decl *fontface.Declaration, size float64) TypeCasePromise {
	ch := make(chan fontPlusErr)
	go func(ch chan<- fontPlusErr) {
		result := fontPlusErr{}
		var f *font.ScalableFont
		for _, src := range decl.Src {
			if src.Local != "" {
				fpath, err := findfont.Find(src.Local)
				if err != nil || fpath == "" {
					continue
				}
				f, result.err = font.LoadOpenTypeFont(fpath)
			} else if src.URL != "" {
				var cachedir string
				if cachedir, result.err = CacheDirPath("fonts"); result.err != nil {
					continue
				}
				fpath := cachedir + "/" + font.NormalizeFontname(decl.Family) + urlExt(src.URL)
				if result.err = DownloadCachedFile(fpath, src.URL); result.err != nil {
					continue
				}
				f, result.err = font.LoadOpenTypeFont(fpath)
			}
			if f != nil {
				break
			}
		}
		if f != nil {
			f.Fontname = decl.Family
			font.GlobalRegistry().StoreFont(f)
			result.font, result.err = font.GlobalRegistry().TypeCase(decl.Family, size)
		} else if result.err == nil {
			result.err = NotFound(decl.Family)
		}
		ch <- result
		close(ch)
	}(ch)
	return fontLoader{
		await: func(ctx context.Context) (*font.TypeCase, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.font, r.err
			}
		},
	}
}

func isFallbackName(name string) bool {
	switch font.NormalizeFontname(name) {
	case "fallback", "go", "go_regular", "sans-serif", "serif", "monospace":
		return true
	}
	return false
}

func bestVariant(fi GoogleFontInfo, style xfont.Style, weight xfont.Weight) string {
	variant := fi.Variants[0]
	best := font.NoConfidence
	for _, v := range fi.Variants {
		c := (font.StyleConfidence(v, style) + font.WeightConfidence(v, weight)) / 2
		if c > best {
			best = c
			variant = v
		}
	}
	return variant
}

func urlExt(u string) string {
	if dot := strings.LastIndex(u, "."); dot >= 0 && len(u)-dot <= 6 {
		return u[dot:]
	}
	return ".ttf"
}
