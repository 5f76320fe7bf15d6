package cerr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/momeni/fastfood/pkg/core/cerr"
	"github.com/stretchr/testify/assert"
)

func TestMismatchingIDError(t *testing.T) {
	err := cerr.BadRequest(&cerr.MismatchingIDError{3, 4})
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatusCode)
	assert.Equal(
		t,
		"ID mismatch: URL ID (3) does not match Body ID (4).",
		err.Err.Error(),
	)
	wrapped := fmt.Errorf("updating: %w", err)
	var mie *cerr.MismatchingIDError
	if assert.True(t, errors.As(wrapped, &mie)) {
		assert.Equal(t, int64(3), mie[0])
		assert.Equal(t, int64(4), mie[1])
	}
	var ce *cerr.Error
	assert.True(t, errors.As(wrapped, &ce))
}

func TestStatusCode(t *testing.T) {
	missing := errors.New("FoodItem not found.")
	assert.Equal(t, http.StatusNotFound, cerr.StatusCode(
		fmt.Errorf("deleting: %w", cerr.NotFound(missing)),
	))
	assert.Equal(t, http.StatusConflict, cerr.StatusCode(
		cerr.Conflict(errors.New("Food type already exists.")),
	))
	assert.Equal(t, http.StatusInternalServerError, cerr.StatusCode(missing))
}
