package httpserver

import (
	"net/http"
	"strings"
)

const viewCookie = "feudal_view"

const (
	viewDesktop = "desktop"
	viewMobile  = "mobile"
)

var viewPrefixes = map[string]string{
	viewDesktop: "/web/",
	viewMobile:  "/web_mobile/",
}

// RegisterStaticRoutes serves the desktop assets under /web/ and the touch
// layout under /web_mobile/. "/" redirects to one of them: a ?view= query
// wins and is remembered in a cookie, then the cookie, then the User-Agent.
func RegisterStaticRoutes(mux *http.ServeMux, desktopDir, mobileDir string) {
	if desktopDir == "" {
		desktopDir = "."
	}
	if mobileDir == "" {
		mobileDir = desktopDir
	}
	dirs := map[string]string{viewDesktop: desktopDir, viewMobile: mobileDir}
	for view, prefix := range viewPrefixes {
		mux.Handle(prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(dirs[view]))))
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			// "/web" and friends without the trailing slash
			for _, prefix := range viewPrefixes {
				if r.URL.Path+"/" == prefix {
					http.Redirect(w, r, prefix, http.StatusFound)
					return
				}
			}
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Vary", "User-Agent, Cookie")
		http.Redirect(w, r, viewPrefixes[chooseView(w, r)], http.StatusFound)
	})
}

func chooseView(w http.ResponseWriter, r *http.Request) string {
	if v, ok := parseView(r.URL.Query().Get("view")); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     viewCookie,
			Value:    v,
			Path:     "/",
			MaxAge:   30 * 24 * 3600,
			SameSite: http.SameSiteLaxMode,
		})
		return v
	}
	if c, err := r.Cookie(viewCookie); err == nil {
		if v, ok := parseView(c.Value); ok {
			return v
		}
	}
	ua := strings.ToLower(r.UserAgent())
	for _, s := range []string{"android", "iphone", "ipad", "ipod", "mobile", "windows phone"} {
		if strings.Contains(ua, s) {
			return viewMobile
		}
	}
	return viewDesktop
}

func parseView(v string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "web", "desktop", "pc":
		return viewDesktop, true
	case "mobile", "m", "phone", "web_mobile":
		return viewMobile, true
	}
	return "", false
}
