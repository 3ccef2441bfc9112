package docker

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/artifactregistry"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// RepositoryID is the Artifact Registry repository the API image is pushed to.
const RepositoryID = "nirvor"

func CreateCloudrunRepo(ctx *pulumi.Context) (*artifactregistry.Repository, error) {
	gcpCfg := config.New(ctx, "gcp")
	region := gcpCfg.Require("region")

	return artifactregistry.NewRepository(ctx, "nirvorRepository", &artifactregistry.RepositoryArgs{
		Format:       pulumi.String("DOCKER"),
		RepositoryId: pulumi.String(RepositoryID),
		Location:     pulumi.String(region),
		Description:  pulumi.String("Nirvor API and content sync images"),
		Labels:       pulumi.StringMap{"app": pulumi.String("nirvor")},
	})
}
