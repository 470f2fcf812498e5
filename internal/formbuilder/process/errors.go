package process

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"formbuilder/internal/formbuilder/formdata"
	id "formbuilder/pkg/domain"
	dErrors "formbuilder/pkg/domain-errors"
	pstrings "formbuilder/pkg/platform/strings"
)

// storageFault classifies a store error. Deadline and cancellation map to
// CodeTimeout, everything else to CodeInternal.
func storageFault(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, msg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

// personIDFrom reads an identifier that is either set by a step or supplied
// with the submission as a string.
func personIDFrom(data *formdata.FormData, key string) (id.PersonID, error) {
	switch v := data.Get(key).(type) {
	case id.PersonID:
		return v, nil
	case uuid.UUID:
		return id.PersonID(v), nil
	case string:
		return id.ParsePersonID(v)
	default:
		return id.PersonID{}, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("%s is not a person ID", key))
	}
}

func familyIDFrom(data *formdata.FormData, key string) (id.FamilyID, error) {
	switch v := data.Get(key).(type) {
	case id.FamilyID:
		return v, nil
	case uuid.UUID:
		return id.FamilyID(v), nil
	case string:
		return id.ParseFamilyID(v)
	default:
		return id.FamilyID{}, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("%s is not a family ID", key))
	}
}

// documentIDsFrom accepts the shapes pending document lists arrive in:
// typed IDs, strings, or a decoded JSON array.
func documentIDsFrom(data *formdata.FormData, key string) ([]id.DocumentID, error) {
	var raw []string
	switch v := data.Get(key).(type) {
	case nil:
		return nil, nil
	case []id.DocumentID:
		return pstrings.Dedupe(v), nil
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("%s must contain document IDs", key))
			}
			raw = append(raw, s)
		}
	case string:
		raw = []string{v}
	default:
		return nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("%s must contain document IDs", key))
	}

	raw = pstrings.DedupeAndTrim(raw)
	ids := make([]id.DocumentID, 0, len(raw))
	for _, s := range raw {
		docID, err := id.ParseDocumentID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, docID)
	}
	return ids, nil
}
