/* Copyright 2025 Onlibry Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package cmd provides the command line interface for the server
package cmd

import (
	"github.com/spf13/cobra"
)

var root = &cobra.Command{
	Use:           "onlibry-server",
	Short:         "Onlibry server - a book catalog service",
	SilenceErrors: true,
	SilenceUsage:  true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	root.AddCommand(newStartCmd())
	root.AddCommand(newUserCmd())
	root.AddCommand(newVersionCmd())
}

// Execute runs the main command
func Execute() error {
	return root.Execute()
}
