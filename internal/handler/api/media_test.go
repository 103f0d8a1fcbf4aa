// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/groplan-go/internal/i18n"
	"github.com/olegiv/groplan-go/internal/testutil"
)

func TestUploadSizeLimitMessageInMegabytes(t *testing.T) {
	require.NoError(t, i18n.Init(testutil.TestLogger()))
	h := newTestHandler(t)

	// A body the multipart parser rejects takes the size-limit branch.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads",
		strings.NewReader("not a multipart body"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=f00")
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	msg := decodeError(t, rec).Message
	assert.Contains(t, msg, "10 MB", "limit must render in megabytes")
	assert.NotContains(t, msg, "10485760", "raw byte count must not leak into the message")
}
