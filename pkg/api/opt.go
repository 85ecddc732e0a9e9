package api

import (
	"net/http"
)

type authOpt struct {
	token string
}

// OAuth2 builds an Authorization option, e.g. OAuth2("Bot", token).
func OAuth2(prefix, token string) *authOpt {
	return &authOpt{token: prefix + " " + token}
}

func (opt *authOpt) Do(client defaultClient, req *http.Request) {
	req.Header.Add("Authorization", opt.token)
}
