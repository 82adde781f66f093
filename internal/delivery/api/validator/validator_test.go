package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Price    float64 `json:"price" validate:"gte=0"`
	Platform string  `json:"platform" validate:"omitempty,oneof=ios android web"`
}

func TestValidate_Valid(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&sampleRequest{Email: "a@mit.edu", Price: 10, Platform: "ios"}))
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{Email: "not-an-email", Price: -1, Platform: "symbian"})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 3)
	assert.Equal(t, "email", verr.Fields[0].Field)
	assert.Equal(t, "email", verr.Fields[0].Rule)
	assert.Equal(t, "price", verr.Fields[1].Field)
	assert.Equal(t, "gte", verr.Fields[1].Rule)
	assert.Equal(t, "0", verr.Fields[1].Param)
	assert.Equal(t, "platform", verr.Fields[2].Field)
	assert.Contains(t, err.Error(), "price failed on gte=0")
}
