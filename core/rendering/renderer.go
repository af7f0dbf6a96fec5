/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Lispy Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package rendering

import (
	"embed"
	"io"

	"github.com/google/lispy/core/views"
	"github.com/google/safehtml/template"
)

//go:embed templates/*
var templateFS embed.FS

// TranscriptRenderer handles rendering of session transcripts to HTML
type TranscriptRenderer struct {
	transcriptTemplate *template.Template
}

// NewTranscriptRenderer creates a new transcript renderer
func NewTranscriptRenderer() (*TranscriptRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	transcriptTemplate, err := template.New("transcript.html").ParseFS(trustedFS, "templates/transcript.html")
	if err != nil {
		return nil, err
	}

	return &TranscriptRenderer{
		transcriptTemplate: transcriptTemplate,
	}, nil
}

// Render renders a TranscriptViewModel to the provided writer
func (r *TranscriptRenderer) Render(w io.Writer, vm views.TranscriptViewModel) error {
	return r.transcriptTemplate.Execute(w, vm)
}
