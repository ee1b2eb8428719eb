package main

import (
	"fmt"

	"github.com/kodaklens/kodaklens/scaffold"
)

func runNew(dir string) error {
	data := scaffold.NewData(dir)
	fmt.Printf("Creating new KodakLens project: %s\n\n", data.ProjectName)

	written, err := scaffold.Generate(dir, data)
	for _, p := range written {
		fmt.Printf("  created %s\n", p)
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Done! Next steps:")
	fmt.Println()
	fmt.Printf("  cd %s\n", dir)
	fmt.Println("  cp .env.example .env")
	fmt.Println("  set -a; . ./.env; set +a")
	fmt.Println("  kodaklens serve")
	fmt.Println()
	fmt.Println("Edit stories.yaml to publish stories. Set SESSION_SECRET in .env for production.")
	return nil
}
