package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/swiftly-solution/codegen/internal/templates"
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init [project-name]",
	Short: "Initialize a new codegen project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		projectName := args[0]
		if err := runInit(projectName); err != nil {
			fmt.Printf("Error initializing project: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// runInit scaffolds a new project directory with the specified name:
// a starter codegen.yaml, a .gitignore and the schema input layout.
func runInit(projectName string) error {
	fmt.Printf("Initializing project %s...\n", projectName)

	if _, err := os.Stat(projectName); !os.IsNotExist(err) {
		return fmt.Errorf("directory %s already exists", projectName)
	}

	if err := os.Mkdir(projectName, 0755); err != nil {
		return err
	}

	if err := generateFileFromTemplate("codegen.yaml.tmpl", filepath.Join(projectName, "codegen.yaml"), struct{ ProjectName string }{projectName}); err != nil {
		return err
	}
	if err := generateFileFromTemplate("gitignore.tmpl", filepath.Join(projectName, ".gitignore"), nil); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(projectName, "schemas", "protos"), 0755); err != nil {
		return err
	}

	fmt.Printf("Project %s initialized successfully!\n", projectName)
	fmt.Println("Next steps:")
	fmt.Printf("  cd %s\n", projectName)
	fmt.Println("  codegen fetch     # (Refresh the event schema cache)")
	fmt.Println("  codegen generate  # (Generate the bindings)")

	return nil
}

// generateFileFromTemplate creates a file at destPath using the specified template and data.
func generateFileFromTemplate(tmplName, destPath string, data interface{}) error {
	content, err := templates.Render(tmplName, nil, data)
	if err != nil {
		return err
	}
	return os.WriteFile(destPath, []byte(content), 0644)
}
