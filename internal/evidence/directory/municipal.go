package directory

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const MunicipalProviderID = "annuaire_service_public"

// MunicipalClient reads town hall contacts from the public service directory.
type MunicipalClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewMunicipalClient(baseURL string, timeout time.Duration) *MunicipalClient {
	return &MunicipalClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
	}
}

type mairieCollection struct {
	Features []struct {
		Properties struct {
			Email    string `json:"email"`
			Adresses []struct {
				CodePostal string `json:"codePostal"`
			} `json:"adresses"`
		} `json:"properties"`
	} `json:"features"`
}

// ContactEmail returns the town hall email for the commune identified by
// geoCode. When the commune has several town halls, the one at postalCode is
// used. No town hall yields an empty string.
func (c *MunicipalClient) ContactEmail(ctx context.Context, geoCode, postalCode string) (string, error) {
	endpoint := c.baseURL + "/communes/" + url.PathEscape(geoCode) + "/mairie"

	var body mairieCollection
	found, err := getJSON(ctx, c.httpClient, MunicipalProviderID, endpoint, &body)
	if err != nil {
		return "", wrap(MunicipalProviderID, err)
	}
	if !found || len(body.Features) == 0 {
		return "", nil
	}
	if len(body.Features) == 1 {
		return body.Features[0].Properties.Email, nil
	}

	var matches []string
	for _, f := range body.Features {
		for _, a := range f.Properties.Adresses {
			if a.CodePostal == postalCode {
				matches = append(matches, f.Properties.Email)
				break
			}
		}
	}
	switch len(matches) {
	case 0:
		return "", nil
	case 1:
		return matches[0], nil
	default:
		return "", wrap(MunicipalProviderID, ErrAmbiguous)
	}
}
