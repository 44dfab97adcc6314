package recipes

import "strings"

// validateWrite checks the payload as a unit and reports every failing
// field at once. Order of checks per field: required, then range, then
// duplicates.
func validateWrite(req WriteRequest) *ValidationError {
	fields := make(map[string]string)

	if len(req.Ingredients) == 0 {
		fields["ingredients"] = "this field is required"
	}
	if len(req.Tags) == 0 {
		fields["tags"] = "this field is required"
	}
	if strings.TrimSpace(req.Image) == "" {
		fields["image"] = "this field is required"
	}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "this field is required"
	}
	if strings.TrimSpace(req.Text) == "" {
		fields["text"] = "this field is required"
	}

	if req.CookingTime == nil {
		fields["cooking_time"] = "this field is required"
	} else if *req.CookingTime < 1 {
		fields["cooking_time"] = "must be at least 1"
	}

	if len(req.Ingredients) > 0 {
		seen := make(map[int64]bool, len(req.Ingredients))
		for _, line := range req.Ingredients {
			if line.Amount == nil || *line.Amount < 1 {
				fields["ingredients"] = "amount must be at least 1"
			}
			if seen[line.ID] {
				fields["ingredients"] = "ingredients must not repeat"
			}
			seen[line.ID] = true
		}
	}

	if len(req.Tags) > 0 {
		seen := make(map[int64]bool, len(req.Tags))
		for _, id := range req.Tags {
			if seen[id] {
				fields["tags"] = "tags must not repeat"
			}
			seen[id] = true
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
