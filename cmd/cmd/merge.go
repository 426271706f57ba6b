// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"github.com/ostafen/apngkit/internal/task"
	"github.com/spf13/cobra"
)

func DefineMergeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <frame.png|dir> ...",
		Short: "Merge multiple PNG files into a single animated PNG",
		Long: `The 'merge' command combines PNG frames into a single APNG file played in an infinite loop.
Directories are expanded to the .png files they contain, in lexical order.
The first frame provides the image header and the metadata chunks of the animation.
By default, frames that cannot be parsed are skipped; use --strict to abort instead.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunMerge,
	}

	cmd.Flags().StringP("output", "o", "", "Path to the output APNG file (required)")
	cmd.Flags().Int("fps", 30, "playback rate in frames per second")
	cmd.Flags().Bool("strict", false, "fail on the first malformed frame instead of skipping it")

	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func RunMerge(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	fps, _ := cmd.Flags().GetInt("fps")
	strict, _ := cmd.Flags().GetBool("strict")

	opts := task.MergeOptions{
		LogOptions: parseLogOptions(cmd),
		Inputs:     args,
		Output:     output,
		FPS:        fps,
		Strict:     strict,
		Progress:   progressOutput(cmd),
	}

	_, err := task.Merge(opts, consoleLogger(cmd))
	return err
}
