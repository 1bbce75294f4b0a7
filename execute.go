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

package nesteddecoder

import (
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/nesteddecoder/codec"
	"github.com/blinklabs-io/nesteddecoder/pattern"
)

// executeStages folds the stages over the input, left to right. No stages
// leaves the input unchanged.
func executeStages(encoded string, stages []pattern.Stage, logger *slog.Logger) (string, error) {
	ret := encoded
	for idx, stage := range stages {
		decoded, err := ApplyStage(stage, ret)
		if err != nil {
			return "", fmt.Errorf("stage %d (%s): %w", idx, stage, err)
		}
		logger.Debug(
			"applied stage",
			"index",
			idx,
			"stage",
			stage.String(),
			"input_len",
			len(ret),
			"output_len",
			len(decoded),
		)
		ret = decoded
	}
	return ret, nil
}

// ApplyStage runs a single stage on the input
func ApplyStage(stage pattern.Stage, encoded string) (string, error) {
	var ret string
	var err error
	switch stage.Kind {
	case pattern.KindASCII:
		ret, err = codec.DecodeASCII(encoded)
	case pattern.KindHTML:
		ret = codec.DecodeHTML(encoded)
	case pattern.KindUnicode:
		ret = codec.DecodeUnicode(encoded)
	case pattern.KindBase64:
		ret, err = codec.DecodeBase64(encoded)
	case pattern.KindBaseN:
		ret = codec.DecodeBaseN(encoded, stage.Radix)
	case pattern.KindUnary:
		ret = codec.DecodeUnary(encoded)
	case pattern.KindRot:
		ret, err = codec.DecodeRot(encoded, stage.Shift, stage.FullCharset)
	case pattern.KindBase58:
		ret, err = codec.DecodeBase58(encoded)
	case pattern.KindBech32:
		ret, err = codec.DecodeBech32(encoded)
	default:
		return "", fmt.Errorf("unknown stage kind %d", stage.Kind)
	}
	if err != nil {
		return "", err
	}
	if stage.ThenASCII {
		return codec.DecodeASCII(ret)
	}
	return ret, nil
}
