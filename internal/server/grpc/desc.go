package grpcserver

import (
	pb "github.com/and161185/keyvault/gen/go/keyvault/v1"
)

// ProtectedMethods lists the methods that need a session token.
func ProtectedMethods() map[string]bool {
	return map[string]bool{
		pb.Vault_RecordActivity_FullMethodName: true,
		pb.Vault_Rotate_FullMethodName:         true,
		pb.Vault_Sign_FullMethodName:           true,
		pb.Vault_Export_FullMethodName:         true,
		pb.Vault_Import_FullMethodName:         true,
	}
}
