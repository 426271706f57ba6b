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

func DefineSplitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <file.png>",
		Short: "Extract every frame of an animated PNG as a standalone PNG file",
		Long: `The 'split' command demuxes an APNG (or a plain PNG) file and writes each frame
as a complete PNG file, carrying over the ancillary chunks of the source such as
color profiles and text metadata. A file missing its IEND chunk is still split.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunSplit,
	}

	cmd.Flags().StringP("output", "o", ".", "directory receiving the extracted frames")
	cmd.Flags().StringP("template", "t", task.DefaultTemplate, `frame file name template, "%s" is replaced by the frame index`)

	return cmd
}

func RunSplit(cmd *cobra.Command, args []string) error {
	outputDir, _ := cmd.Flags().GetString("output")
	template, _ := cmd.Flags().GetString("template")

	opts := task.SplitOptions{
		LogOptions: parseLogOptions(cmd),
		OutputDir:  outputDir,
		Template:   template,
		Progress:   progressOutput(cmd),
	}

	_, err := task.Split(args[0], opts, consoleLogger(cmd))
	return err
}
