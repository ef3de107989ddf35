package luci

// Session holds the sysauth cookie issued by the router on login. It is
// owned by the client and replaced wholesale on every successful
// re-authentication; the fetcher only ever reads it.
type Session struct {
	Token string
}

func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}
