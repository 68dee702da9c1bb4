package shader

// LineVertex and LineFragment draw colored line overlays. Vertex layout:
// location 0 position xyz, location 1 color rgba.
const LineVertex = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uMVP;

out vec4 vColor;

void main() {
    gl_Position = uMVP * vec4(aPos, 1.0);
    vColor = aColor;
}
`

const LineFragment = `#version 410 core
in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = vColor;
}
`

// MeshVertex and MeshFragment shade triangle meshes with a headlight and
// separate front and back face colors. uHeadlight = 0 gives flat color. Vertex layout: location 0 position,
// location 1 normal.
const MeshVertex = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uMVP;
uniform mat4 uModelView;

out vec3 vNormal;

void main() {
    gl_Position = uMVP * vec4(aPos, 1.0);
    vNormal = mat3(uModelView) * aNormal;
}
`

const MeshFragment = `#version 410 core
in vec3 vNormal;

uniform vec4 uFrontColor;
uniform vec4 uBackColor;
uniform int uHeadlight;

out vec4 FragColor;

void main() {
    vec4 base = gl_FrontFacing ? uFrontColor : uBackColor;
    if (uHeadlight == 0) {
        FragColor = base;
        return;
    }
    vec3 n = normalize(vNormal);
    if (!gl_FrontFacing) {
        n = -n;
    }
    // Headlight along the view axis.
    float diffuse = max(dot(n, vec3(0.0, 0.0, 1.0)), 0.0);
    FragColor = vec4(base.rgb * (0.35 + 0.65 * diffuse), base.a);
}
`

// EdgeVertex and EdgeFragment draw mesh edges in a single color.
const EdgeVertex = `#version 410 core
layout (location = 0) in vec3 aPos;

uniform mat4 uMVP;

void main() {
    gl_Position = uMVP * vec4(aPos, 1.0);
}
`

const EdgeFragment = `#version 410 core
uniform vec4 uColor;
out vec4 FragColor;

void main() {
    FragColor = uColor;
}
`
