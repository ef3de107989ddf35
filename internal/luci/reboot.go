package luci

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Reboot triggers a router reboot. The confirmation form requires a fresh
// token scraped from the intermediate page; a stale token is rejected.
func (c *Client) Reboot(ctx context.Context) bool {
	page := c.Get(ctx, "admin/system/reboot")
	if page == "" {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return false
	}
	token := hiddenInput(doc, "token")
	if token == "" {
		c.logger.Warn("reboot page missing token")
		return false
	}

	form := url.Values{}
	form.Set("token", token)
	form.Set("timeclock", strconv.FormatInt(time.Now().Unix(), 10))
	form.Set("cbi.submit", "1")
	form.Set("cbi.apply", "OK")

	return c.Post(ctx, "admin/system/reboot/reboot", form)
}
