// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	nesteddecoder "github.com/blinklabs-io/nesteddecoder"
	"github.com/spf13/cobra"
)

func newOptionsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the supported parameters and encodings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.answer(nesteddecoder.Request{})
		},
	}
}

func newDetectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "detect [text]",
		Short: "Suggest the encoding most likely used for the text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.inputText(args)
			if err != nil {
				return err
			}
			resp := nesteddecoder.Response{
				Kind:       nesteddecoder.ResponseSuggestion,
				Suggestion: a.decoder.Detect(text),
			}
			return newResponseWriter(a.cfg.Format, a.stdout).WriteResponse(resp)
		},
	}
}
