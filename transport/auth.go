package transport

import (
	"context"
	"encoding/base64"
	"encoding/xml"
	"net/http"

	"github.com/hashicorp/go-multierror"

	"github.com/s0up4200/restvc/hypermedia"
)

const logonSessionsPath = "logonSessions"

// BasicCredential builds the pre-hashed username:password pair presented
// during the logon handshake.
func BasicCredential(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

// apiRoot is the unauthenticated API root entity. Its only interesting
// content is the link collection advertising the logon target.
type apiRoot struct {
	XMLName xml.Name
	Links   hypermedia.LinkList `xml:"Links"`
}

// LogonSession is one active session as reported by the server.
type LogonSession struct {
	XMLName   xml.Name            `xml:"LogonSession"`
	SessionID string              `xml:"SessionId"`
	UserName  string              `xml:"UserName"`
	Links     hypermedia.LinkList `xml:"Links"`
}

// LogonSessionList is the collection returned by the logon session
// listing endpoint.
type LogonSessionList struct {
	XMLName  xml.Name       `xml:"LogonSessionList"`
	Sessions []LogonSession `xml:"LogonSession"`
}

// Logon performs the authentication handshake: discover the logon target
// from the unauthenticated API root, POST the Basic credential to it, and
// store the session token issued in the response header. The Basic
// credential is presented only on that single request; the token replaces
// it for everything that follows.
func (c *Client) Logon(ctx context.Context) error {
	resp, err := c.roundTrip(ctx, http.MethodGet, c.base.String(), nil, "", "")
	if err != nil {
		return err
	}
	if resp.Status < 200 || resp.Status > 299 {
		return &StatusError{Code: resp.Status, URI: c.base.String(), Body: string(resp.Body)}
	}

	var root apiRoot
	if err := resp.Decode(&root); err != nil {
		return &ProtocolError{Reason: "malformed API root entity", Err: err}
	}
	logonURI, err := root.Links.Require(hypermedia.RelCreate)
	if err != nil {
		return &ProtocolError{Reason: "API root does not advertise a logon link", Err: err}
	}
	target, err := c.resolveURI(logonURI)
	if err != nil {
		return err
	}

	resp, err = c.roundTrip(ctx, http.MethodPost, target, nil, "", "Basic "+c.credential)
	if err != nil {
		return err
	}
	if resp.Status < 200 || resp.Status > 299 {
		return &StatusError{Code: resp.Status, URI: target, Body: string(resp.Body)}
	}

	token := resp.Header.Get(c.session.HeaderName())
	if token == "" {
		return &ProtocolError{Reason: "logon response is missing header " + c.session.HeaderName()}
	}
	c.session.SetToken(token)

	c.logger.Debug().Str("url", c.base.String()).Msg("authenticated")
	return nil
}

// Logoff enumerates the active logon sessions and deletes each one
// through its Delete link. Deletion is best-effort: a failure on one
// session does not stop the others, and all failures are aggregated. The
// local token is cleared regardless of the outcome.
func (c *Client) Logoff(ctx context.Context) error {
	if !c.session.Authenticated() {
		return nil
	}
	defer c.session.Clear()

	var merr *multierror.Error

	sessions, err := Get[LogonSessionList](ctx, c, logonSessionsPath)
	if err != nil {
		return multierror.Append(merr, err).ErrorOrNil()
	}

	for _, s := range sessions.Sessions {
		href, ok, err := s.Links.Find(hypermedia.RelDelete)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		if !ok {
			continue
		}
		if _, err := c.Do(ctx, http.MethodDelete, href, nil); err != nil {
			c.logger.Warn().Err(err).Str("session", s.SessionID).Msg("failed to delete logon session")
			merr = multierror.Append(merr, err)
		}
	}

	return merr.ErrorOrNil()
}
