package cloudrun

import (
	"fmt"
	"strconv"

	"github.com/pulumi/pulumi-docker/sdk/v4/go/docker"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/cloudrun"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/serviceaccount"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"

	"github.com/GregMSThompson/nirvor-backend/infra/common"
	repos "github.com/GregMSThompson/nirvor-backend/infra/docker"
	"github.com/GregMSThompson/nirvor-backend/infra/secret"
)

// apiRoles are granted to the API service account at project level.
var apiRoles = map[string]string{
	"firestoreAccess": "roles/datastore.user",                       // content document
	"kmsAccess":       "roles/cloudkms.cryptoKeyEncrypterDecrypter", // wallet snapshots
	"vertexAccess":    "roles/aiplatform.user",                      // assistant
}

func SetupCloudRun(ctx *pulumi.Context, prov *gcp.Provider, apiSA *serviceaccount.Account, kmsKeyID pulumi.StringOutput, res ...pulumi.Resource) error {
	img, err := buildApiImage(ctx, res...)
	if err != nil {
		return err
	}

	srv, err := enableCloudRun(ctx, prov)
	if err != nil {
		return err
	}

	envs, err := containerEnvs(ctx, kmsKeyID)
	if err != nil {
		return err
	}

	svc, err := createCloudRunService(ctx, img, apiSA, envs, prov, append(res, srv)...)
	if err != nil {
		return err
	}

	return setIAMAccessPolicy(ctx, svc, prov)
}

func buildApiImage(ctx *pulumi.Context, res ...pulumi.Resource) (*docker.Image, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	hash, err := common.GenerateHash("../")
	if err != nil {
		return nil, err
	}

	return docker.NewImage(ctx, "apiImage", &docker.ImageArgs{
		Build: docker.DockerBuildArgs{
			Platform:   pulumi.String("linux/amd64"),
			Context:    pulumi.String(".."),                    // build from repo root
			Dockerfile: pulumi.String("../cmd/api/Dockerfile"), // Dockerfile path relative to repo root
		},
		ImageName: pulumi.String(fmt.Sprintf("%s-docker.pkg.dev/%s/%s/nirvor-api:%s", region, projectID, repos.RepositoryID, hash)),
	},
		pulumi.DependsOn(res),
	)
}

func enableCloudRun(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "cloudRunService", &projects.ServiceArgs{
		Service: pulumi.String("run.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func CreateServiceAccount(ctx *pulumi.Context, prov *gcp.Provider) (*serviceaccount.Account, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")

	apiSA, err := serviceaccount.NewAccount(ctx, "apiServiceAccount", &serviceaccount.AccountArgs{
		AccountId:   pulumi.String("nirvor-api"),
		DisplayName: pulumi.String("Nirvor API Service Account"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	member := apiSA.Email.ApplyT(func(email string) string {
		return fmt.Sprintf("serviceAccount:%s", email)
	}).(pulumi.StringOutput)

	for name, role := range apiRoles {
		_, err = projects.NewIAMMember(ctx, name, &projects.IAMMemberArgs{
			Role:    pulumi.String(role),
			Member:  member,
			Project: pulumi.String(projectID),
		},
			pulumi.Provider(prov),
		)
		if err != nil {
			return nil, err
		}
	}

	return apiSA, nil
}

func containerEnvs(ctx *pulumi.Context, kmsKeyID pulumi.StringOutput) (cloudrun.ServiceTemplateSpecContainerEnvArray, error) {
	gcpCfg := config.New(ctx, "gcp")
	crCfg := config.New(ctx, "cloudrun")
	appCfg := config.New(ctx, "nirvor")

	env := func(name string, value pulumi.StringInput) *cloudrun.ServiceTemplateSpecContainerEnvArgs {
		return &cloudrun.ServiceTemplateSpecContainerEnvArgs{Name: pulumi.String(name), Value: value}
	}

	envs := cloudrun.ServiceTemplateSpecContainerEnvArray{
		env("PROJECTID", pulumi.String(gcpCfg.Require("project"))),
		env("REGION", pulumi.String(gcpCfg.Require("region"))),
		env("LOGLEVEL", pulumi.String(crCfg.Require("logLevel"))),
		env("KMSKEYNAME", kmsKeyID),
	}
	if model := appCfg.Get("vertexModel"); model != "" {
		envs = append(envs, env("VERTEXMODEL", pulumi.String(model)))
	}
	if rate := appCfg.Get("gatewayFailureRate"); rate != "" {
		envs = append(envs, env("GATEWAYFAILURERATE", pulumi.String(rate)))
	}

	// Without a Redis address the service keeps its local store in SQLite on
	// the instance's scratch disk.
	redisAddr := appCfg.Get("redisAddr")
	if redisAddr == "" {
		envs = append(envs,
			env("LOCALSTORE", pulumi.String("sqlite")),
			env("DATADIR", pulumi.String("/tmp/nirvor")),
		)
		return envs, nil
	}

	envs = append(envs,
		env("LOCALSTORE", pulumi.String("redis")),
		env("REDISADDR", pulumi.String(redisAddr)),
	)
	password := appCfg.GetSecret("redisPassword")
	secretName, err := secret.AddSecret(ctx, "redisPasswordSecret", "redisPassword", password)
	if err != nil {
		return nil, err
	}
	envs = append(envs, &cloudrun.ServiceTemplateSpecContainerEnvArgs{
		Name: pulumi.String("REDISPASSWORD"),
		ValueFrom: &cloudrun.ServiceTemplateSpecContainerEnvValueFromArgs{
			SecretKeyRef: &cloudrun.ServiceTemplateSpecContainerEnvValueFromSecretKeyRefArgs{
				Name: secretName,
				Key:  pulumi.String("latest"),
			},
		},
	})
	return envs, nil
}

func createCloudRunService(ctx *pulumi.Context,
	img *docker.Image,
	apiSA *serviceaccount.Account,
	envs cloudrun.ServiceTemplateSpecContainerEnvArray,
	prov *gcp.Provider,
	res ...pulumi.Resource) (*cloudrun.Service, error) {
	gcpCfg := config.New(ctx, "gcp")
	crCfg := config.New(ctx, "cloudrun")

	region := gcpCfg.Require("region")
	minScale := crCfg.Require("minScale")
	maxScale := crCfg.Require("maxScale")
	cpu := crCfg.Require("cpu")
	memory := crCfg.Require("memory")
	concurrency := crCfg.Require("concurrency")
	timeout, _ := strconv.Atoi(crCfg.Require("timeout"))

	return cloudrun.NewService(ctx, "apiService", &cloudrun.ServiceArgs{
		Name:     pulumi.String("nirvor-api"),
		Location: pulumi.String(region),

		Template: &cloudrun.ServiceTemplateArgs{

			Metadata: &cloudrun.ServiceTemplateMetadataArgs{
				// ---- AUTOSCALING + INSTANCE SIZE ----
				Annotations: pulumi.StringMap{
					// Autoscaling bounds
					"autoscaling.knative.dev/minScale": pulumi.String(minScale),
					"autoscaling.knative.dev/maxScale": pulumi.String(maxScale),

					// Instance sizing
					"run.googleapis.com/cpu":    pulumi.String(cpu),
					"run.googleapis.com/memory": pulumi.String(memory),

					// Payment sessions and the content refresh run in the
					// background, so keep CPU allocated between requests.
					"run.googleapis.com/cpu-throttling": pulumi.String("false"),

					// Set the number of concurrent requests per container
					"run.googleapis.com/container-concurrency": pulumi.String(concurrency),
				},
			},

			Spec: &cloudrun.ServiceTemplateSpecArgs{
				ServiceAccountName: apiSA.Email,
				TimeoutSeconds:     pulumi.Int(timeout),

				Containers: cloudrun.ServiceTemplateSpecContainerArray{
					&cloudrun.ServiceTemplateSpecContainerArgs{
						Image: img.ImageName,
						Ports: cloudrun.ServiceTemplateSpecContainerPortArray{
							&cloudrun.ServiceTemplateSpecContainerPortArgs{
								ContainerPort: pulumi.Int(8080),
							},
						},
						Envs: envs,
					},
				},
			},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

func setIAMAccessPolicy(ctx *pulumi.Context, svc *cloudrun.Service, prov *gcp.Provider) error {
	gcpCfg := config.New(ctx, "gcp")
	region := gcpCfg.Require("region")

	_, err := cloudrun.NewIamMember(ctx, "publicInvoker", &cloudrun.IamMemberArgs{
		Service:  svc.Name,
		Location: pulumi.String(region),
		Role:     pulumi.String("roles/run.invoker"),
		Member:   pulumi.String("allUsers"),
	},
		pulumi.Provider(prov),
	)
	return err
}
