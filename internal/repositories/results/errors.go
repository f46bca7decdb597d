package results

import "github.com/KirkDiggler/mine/internal/errors"

func errInvalid(message string) error {
	return errors.InvalidArgument(message)
}

func errNotFound(id string) error {
	return errors.NotFoundf("result not found: %s", id).WithMeta("result_id", id)
}

func errExists(id string) error {
	return errors.AlreadyExistsf("result with ID %s already exists", id).WithMeta("result_id", id)
}
