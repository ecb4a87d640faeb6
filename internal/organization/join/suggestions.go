package join

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"moncomptepro/internal/organization/models"
	dErrors "moncomptepro/pkg/domain-errors"
	"moncomptepro/pkg/platform/sentinel"
)

// SuggestOrganizations lists organizations the user could join based on
// their email domain: organizations that verified it and organizations
// whose members mostly use it. Free providers and academy domains get no
// suggestions, nor do organizations the user already belongs to.
func (s *Service) SuggestOrganizations(ctx context.Context, userID int64) ([]*models.Organization, error) {
	ctx, span := s.startSpan(ctx, "JoinService.SuggestOrganizations")
	defer span.End()

	domain, err := s.userDomain(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if s.classifier.IsFreeEmailProviderDomain(domain) || s.classifier.IsEducationDomain(domain) {
		return []*models.Organization{}, nil
	}

	candidates, memberships, err := s.suggestionCandidates(ctx, userID, domain)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	member := make(map[int64]struct{}, len(memberships))
	for _, org := range memberships {
		member[org.ID] = struct{}{}
	}
	suggestions := make([]*models.Organization, 0, len(candidates))
	for _, org := range candidates {
		if _, ok := member[org.ID]; !ok {
			suggestions = append(suggestions, org)
		}
	}
	return suggestions, nil
}

// ShouldSuggestOrganizations reports whether a user without any organization
// has candidates to pick from. Academy domains are not excluded here.
func (s *Service) ShouldSuggestOrganizations(ctx context.Context, userID int64) (bool, error) {
	ctx, span := s.startSpan(ctx, "JoinService.ShouldSuggestOrganizations")
	defer span.End()

	domain, err := s.userDomain(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return false, err
	}
	if s.classifier.IsFreeEmailProviderDomain(domain) {
		return false, nil
	}

	candidates, memberships, err := s.suggestionCandidates(ctx, userID, domain)
	if err != nil {
		span.RecordError(err)
		return false, err
	}
	return len(memberships) == 0 && len(candidates) > 0, nil
}

func (s *Service) userDomain(ctx context.Context, userID int64) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.Wrap(err, dErrors.CodeUserNotFound, "user not found")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return s.classifier.EmailDomain(user.Email), nil
}

// suggestionCandidates runs the three lookups concurrently and returns the
// deduplicated candidates, verified domain matches first, along with the
// user's current organizations.
func (s *Service) suggestionCandidates(ctx context.Context, userID int64, domain string) ([]*models.Organization, []*models.Organization, error) {
	var verified, mostUsed, memberships []*models.Organization

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		orgs, err := s.orgs.FindByVerifiedEmailDomain(gctx, domain)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to find organizations by verified domain")
		}
		verified = orgs
		return nil
	})
	g.Go(func() error {
		orgs, err := s.orgs.FindByMostUsedEmailDomain(gctx, domain)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to find organizations by member domain")
		}
		mostUsed = orgs
		return nil
	})
	g.Go(func() error {
		orgs, err := s.orgs.FindByUserID(gctx, userID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list user organizations")
		}
		memberships = orgs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	seen := make(map[int64]struct{}, len(verified)+len(mostUsed))
	candidates := make([]*models.Organization, 0, len(verified)+len(mostUsed))
	for _, org := range append(verified, mostUsed...) {
		if _, dup := seen[org.ID]; dup {
			continue
		}
		seen[org.ID] = struct{}{}
		candidates = append(candidates, org)
	}
	return candidates, memberships, nil
}
