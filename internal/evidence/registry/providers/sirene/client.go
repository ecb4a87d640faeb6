// Package sirene fetches establishment records from the INSEE Sirene API.
package sirene

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"moncomptepro/internal/evidence/registry/providers"
	"moncomptepro/internal/organization/models"
)

const ProviderID = "sirene"

// Client calls GET {base}/siret/{siret}.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	now        func() time.Time
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

func WithClock(now func() time.Time) Option {
	return func(cl *Client) { cl.now = now }
}

func New(baseURL, token string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type response struct {
	Etablissement *etablissement `json:"etablissement"`
}

type etablissement struct {
	Siret                         string    `json:"siret"`
	TrancheEffectifsEtablissement string    `json:"trancheEffectifsEtablissement"`
	UniteLegale                   unite     `json:"uniteLegale"`
	Adresse                       adresse   `json:"adresseEtablissement"`
	Periodes                      []periode `json:"periodesEtablissement"`
}

type unite struct {
	Denomination       string `json:"denominationUniteLegale"`
	Nom                string `json:"nomUniteLegale"`
	PrenomUsuel        string `json:"prenomUsuelUniteLegale"`
	CategorieJuridique string `json:"categorieJuridiqueUniteLegale"`
	ActivitePrincipale string `json:"activitePrincipaleUniteLegale"`
	TrancheEffectifs   string `json:"trancheEffectifsUniteLegale"`
}

type adresse struct {
	CodePostal  string `json:"codePostalEtablissement"`
	CodeCommune string `json:"codeCommuneEtablissement"`
}

type periode struct {
	EtatAdministratif  string `json:"etatAdministratifEtablissement"`
	Enseigne1          string `json:"enseigne1Etablissement"`
	ActivitePrincipale string `json:"activitePrincipaleEtablissement"`
}

// Lookup fetches and normalizes the establishment identified by siret.
// Failures are *providers.ProviderError.
func (c *Client) Lookup(ctx context.Context, siret string) (*models.OrganizationInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/siret/"+siret, nil)
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorInternal, ProviderID, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, providers.FromTransport(ProviderID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, providers.FromStatus(ProviderID, resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, providers.NewProviderError(providers.ErrorContractMismatch, ProviderID, "decode response", err)
	}
	if body.Etablissement == nil || body.Etablissement.Siret == "" {
		return nil, providers.NewProviderError(providers.ErrorContractMismatch, ProviderID, "missing etablissement", nil)
	}
	return c.toInfo(body.Etablissement), nil
}

func (c *Client) toInfo(e *etablissement) *models.OrganizationInfo {
	var current periode
	if len(e.Periodes) > 0 {
		current = e.Periodes[0]
	}

	activite := current.ActivitePrincipale
	if activite == "" {
		activite = e.UniteLegale.ActivitePrincipale
	}
	tranche := e.UniteLegale.TrancheEffectifs
	if tranche == "" {
		tranche = e.TrancheEffectifsEtablissement
	}

	return &models.OrganizationInfo{
		Siret:                     e.Siret,
		Libelle:                   libelle(e, current),
		EstActive:                 current.EtatAdministratif == "A",
		CategorieJuridique:        e.UniteLegale.CategorieJuridique,
		LibelleCategorieJuridique: categoriesJuridiques[e.UniteLegale.CategorieJuridique],
		ActivitePrincipale:        activite,
		CodeOfficielGeographique:  e.Adresse.CodeCommune,
		CodePostal:                e.Adresse.CodePostal,
		TrancheEffectifs:          tranche,
		FetchedAt:                 c.now(),
	}
}

func libelle(e *etablissement, current periode) string {
	name := e.UniteLegale.Denomination
	if name == "" {
		name = strings.TrimSpace(e.UniteLegale.PrenomUsuel + " " + e.UniteLegale.Nom)
	}
	switch {
	case name != "" && current.Enseigne1 != "":
		return fmt.Sprintf("%s - %s", name, current.Enseigne1)
	case name != "":
		return name
	default:
		return current.Enseigne1
	}
}

// Labels for the legal categories the classifier cares about. Other codes
// keep an empty label.
var categoriesJuridiques = map[string]string{
	"1000": "Entrepreneur individuel",
	"7210": "Commune et commune nouvelle",
	"7331": "Établissement public local d'enseignement",
	"7389": "Établissement public national à caractère administratif",
}
