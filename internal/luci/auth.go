package luci

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Authenticate performs the LuCI challenge login and replaces the session
// token on success. The login page carries up to three hidden inputs:
// a CSRF token, a session token and a salt. When a salt is present the
// password is transmitted as sha256(password+salt), further hashed with the
// token when one is present; without a salt the firmware expects plaintext.
//
// No retry happens here; retrying is the fetcher's job.
func (c *Client) Authenticate(ctx context.Context) bool {
	loginURL := c.cfg.BaseURL() + "/cgi-bin/luci"

	pageCtx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(pageCtx, http.MethodGet, loginURL, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("login page fetch failed", "err", err)
		return false
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	resp.Body.Close()
	if err != nil {
		c.logger.Warn("login page unreadable", "err", err)
		return false
	}

	csrf := hiddenInput(doc, "_csrf")
	token := hiddenInput(doc, "token")
	salt := hiddenInput(doc, "salt")

	password := c.cfg.Password
	if salt != "" {
		hashed := sha256Hex(password + salt)
		if token != "" {
			hashed = sha256Hex(hashed + token)
		}
		password = hashed
	}

	form := url.Values{}
	setNonEmpty(form, "_csrf", csrf)
	setNonEmpty(form, "token", token)
	setNonEmpty(form, "salt", salt)
	setNonEmpty(form, "zonename", time.Local.String())
	setNonEmpty(form, "timeclock", strconv.FormatInt(time.Now().Unix(), 10))
	setNonEmpty(form, "luci_language", "en")
	setNonEmpty(form, "luci_username", c.cfg.Username)
	setNonEmpty(form, "luci_password", password)

	postReq, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	postReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	postResp, err := c.httpClient.Do(postReq)
	if err != nil {
		c.logger.Warn("login submit failed", "err", err)
		return false
	}
	defer postResp.Body.Close()

	if postResp.StatusCode < 200 || postResp.StatusCode >= 300 {
		return false
	}
	for _, cookie := range postResp.Cookies() {
		if cookie.Name == "sysauth" && cookie.Value != "" {
			c.session = &Session{Token: cookie.Value}
			return true
		}
	}
	return false
}

func hiddenInput(doc *goquery.Document, name string) string {
	return doc.Find(fmt.Sprintf("input[name=%s]", name)).AttrOr("value", "")
}

func setNonEmpty(form url.Values, key, value string) {
	if value != "" {
		form.Set(key, value)
	}
}

func sha256Hex(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
