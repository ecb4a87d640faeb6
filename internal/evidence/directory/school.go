package directory

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

const EducationProviderID = "annuaire_education_nationale"

// SchoolClient reads school contacts from the national education directory.
type SchoolClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewSchoolClient(baseURL string, timeout time.Duration) *SchoolClient {
	return &SchoolClient{
		baseURL:    baseURL,
		httpClient: newHTTPClient(timeout),
	}
}

type educationRecords struct {
	Records []struct {
		Fields struct {
			Mail string `json:"mail"`
		} `json:"fields"`
	} `json:"records"`
}

// ContactEmail returns the email of the first school record for siret.
func (c *SchoolClient) ContactEmail(ctx context.Context, siret string) (string, error) {
	query := url.Values{}
	query.Set("dataset", "fr-en-annuaire-education")
	query.Set("refine.siren_siret", siret)

	var body educationRecords
	found, err := getJSON(ctx, c.httpClient, EducationProviderID, c.baseURL+"?"+query.Encode(), &body)
	if err != nil {
		return "", wrap(EducationProviderID, err)
	}
	if !found || len(body.Records) == 0 {
		return "", nil
	}
	return body.Records[0].Fields.Mail, nil
}
