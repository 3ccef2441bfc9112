package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/nirvor-backend/infra/cloudrun"
	"github.com/GregMSThompson/nirvor-backend/infra/docker"
	"github.com/GregMSThompson/nirvor-backend/infra/firestore"
	"github.com/GregMSThompson/nirvor-backend/infra/kms"
	"github.com/GregMSThompson/nirvor-backend/infra/provider"
	"github.com/GregMSThompson/nirvor-backend/infra/secret"
	"github.com/GregMSThompson/nirvor-backend/infra/vertex"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// remote content document lives in firestore
		err = firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// assistant
		err = vertex.SetupVertex(ctx, prov)
		if err != nil {
			return err
		}

		// wallet snapshot encryption key
		kmsSvc, err := kms.SetupKMS(ctx, prov)
		if err != nil {
			return err
		}
		keyID, err := kms.CreateKey(ctx, prov, "nirvor", "wallet")
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx)
		if err != nil {
			return err
		}

		apiSA, err := cloudrun.CreateServiceAccount(ctx, prov)
		if err != nil {
			return err
		}

		secretSvc, err := secret.SetupSecretManager(ctx, prov, apiSA)
		if err != nil {
			return err
		}

		return cloudrun.SetupCloudRun(ctx, prov, apiSA, keyID, repo, kmsSvc, secretSvc)
	})
}
