package studentvue

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/pkg/errors"

	"svexport/core"
	"svexport/core/gradebook"
)

const (
	contentType = "application/soap+xml; charset=utf-8"
	userAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_13_6) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/72.0.3626.109 Safari/537.36"

	envelopeTmpl = `<?xml version="1.0" encoding="utf-8"?>
<soap12:Envelope xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
  <soap12:Body>
    <ProcessWebServiceRequest xmlns="http://edupoint.com/webservices/">
      <userID>%s</userID>
      <password>%s</password>
      <skipLoginLog>true</skipLoginLog>
      <parent>false</parent>
      <webServiceHandleName>PXPWebServices</webServiceHandleName>
      <methodName>Gradebook</methodName>
      <paramStr>&lt;Params&gt;&lt;ReportPeriod&gt;%d&lt;/ReportPeriod&gt;&lt;/Params&gt;</paramStr>
    </ProcessWebServiceRequest>
  </soap12:Body>
</soap12:Envelope>`
)

// Client speaks the portal's PXPWebServices SOAP endpoint.
type Client struct {
	http   *http.Client
	url    string
	logger core.Logger
}

var _ gradebook.Client = (*Client)(nil)

func NewClient(logger core.Logger) *Client {
	j, _ := cookiejar.New(&cookiejar.Options{})
	return &Client{
		http: &http.Client{
			Jar:     j,
			Timeout: core.Conf.RequestTimeout,
		},
		url:    core.Conf.PortalURL,
		logger: logger,
	}
}

type (
	// soapResult is the outer SOAP envelope; the result text is itself
	// escaped gradebook XML.
	soapResult struct {
		Result string `xml:"Body>ProcessWebServiceRequestResponse>ProcessWebServiceRequestResult"`
	}

	// portalError matches the RT_ERROR payload the portal returns in place
	// of a gradebook.
	portalError struct {
		Message string `xml:"ERROR_MESSAGE,attr"`
	}
)

// Gradebook fetches one reporting period and unwraps it into the domain model.
func (c *Client) Gradebook(ctx context.Context, creds gradebook.Credentials, period int) (gradebook.Gradebook, error) {
	gb := gradebook.Gradebook{ReportingPeriod: period}
	c.logger.Debug(fmt.Sprintf("POST %s (reporting period %d)", c.url, period))

	body := envelope(creds, period)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(body))
	if err != nil {
		return gb, errors.Wrap(err, "building portal request")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return gb, errors.Wrap(err, "calling portal")
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return gb, errors.Errorf("portal returned status %d", resp.StatusCode)
	}

	var res soapResult
	if err := xml.NewDecoder(resp.Body).Decode(&res); err != nil {
		return gb, errors.Wrap(err, "decoding SOAP response")
	}

	if err := classifyResult(res.Result); err != nil {
		return gb, err
	}
	if err := xml.Unmarshal([]byte(res.Result), &gb); err != nil {
		return gb, errors.Wrap(err, "decoding gradebook XML")
	}
	return gb, nil
}

// classifyResult separates bad credentials (fatal) from a period the portal
// has no data for (skippable).
func classifyResult(result string) error {
	if !strings.Contains(result, "ERROR") {
		return nil
	}
	var pe portalError
	if err := xml.Unmarshal([]byte(result), &pe); err == nil {
		msg := strings.ToLower(pe.Message)
		if strings.Contains(msg, "invalid user") || strings.Contains(msg, "password") {
			return gradebook.ErrInvalidCredentials
		}
	}
	return gradebook.ErrPeriodUnavailable
}

func envelope(creds gradebook.Credentials, period int) string {
	return fmt.Sprintf(envelopeTmpl, escape(creds.Username), escape(creds.Password), period)
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
